package join

// slot is one distinct observer of a plan and how many pattern positions
// name it.
type slot struct {
	observer *joinObserver
	count    int
}

type outcome int

const (
	idle outcome = iota
	fired
	exhausted
)

// activePlan matches one Plan within a subscription group.
type activePlan struct {
	index     int
	observers []*joinObserver // pattern order, may repeat
	slots     []slot          // distinct observers, first appearance order
	active    bool
	fire      func(values []any) error
}

func newActivePlan(index int, observers []*joinObserver, fire func([]any) error) *activePlan {
	ap := &activePlan{
		index:     index,
		observers: observers,
		active:    true,
		fire:      fire,
	}
	for _, jo := range observers {
		found := false
		for i := range ap.slots {
			if ap.slots[i].observer == jo {
				ap.slots[i].count++
				found = true
				break
			}
		}
		if !found {
			ap.slots = append(ap.slots, slot{observer: jo, count: 1})
		}
	}
	return ap
}

func (ap *activePlan) ready() bool {
	for _, s := range ap.slots {
		if s.observer.size() < s.count {
			return false
		}
	}
	return true
}

// canNeverMatch reports whether some source completed without enough
// buffered elements to satisfy the plan again.
func (ap *activePlan) canNeverMatch() bool {
	for _, s := range ap.slots {
		if s.observer.completed && s.observer.size() < s.count {
			return true
		}
	}
	return false
}

// recheck fires the plan once if every source has data, or reports that it
// can never fire again.
func (ap *activePlan) recheck() (outcome, error) {
	if !ap.ready() {
		if ap.canNeverMatch() {
			return exhausted, nil
		}
		return idle, nil
	}
	values := make([]any, len(ap.observers))
	for i, jo := range ap.observers {
		values[i] = jo.dequeue()
	}
	return fired, ap.fire(values)
}
