package budget_entry

import "fmt"

// Amount distinguishes a figure that has not been entered yet from an entered
// zero.
type Amount struct {
	value   float64
	entered bool
}

func NotEntered() Amount {
	return Amount{}
}

func Entered(value float64) Amount {
	return Amount{value: value, entered: true}
}

// AmountFromPtr maps nil to NotEntered.
func AmountFromPtr(value *float64) Amount {
	if value == nil {
		return NotEntered()
	}
	return Entered(*value)
}

func (a Amount) IsEntered() bool {
	return a.entered
}

// Value returns the entered value, or 0 when nothing was entered.
func (a Amount) Value() float64 {
	if !a.entered {
		return 0
	}
	return a.value
}

func (a Amount) Ptr() *float64 {
	if !a.entered {
		return nil
	}
	v := a.value
	return &v
}

func (a Amount) String() string {
	if !a.entered {
		return "-"
	}
	return fmt.Sprintf("%.2f", a.value)
}

type Entry struct {
	Id         string
	CategoryId string
	Year       int
	// Month is 1-12.
	Month int
	// Quarter is derivable from Month but stored with the entry.
	Quarter    int
	Budget     float64
	Actual     Amount
	Reforecast Amount
	Adjustment Amount
	Notes      *string
}

type Key struct {
	CategoryId string
	Year       int
	Month      int
}

func (e Entry) Key() Key {
	return Key{CategoryId: e.CategoryId, Year: e.Year, Month: e.Month}
}

func QuarterOf(month int) int {
	if month < 1 || month > 12 {
		return 0
	}
	return (month-1)/3 + 1
}

// QuarterMonths returns the three months of a quarter, or nil for an invalid
// quarter.
func QuarterMonths(quarter int) []int {
	if quarter < 1 || quarter > 4 {
		return nil
	}
	first := (quarter-1)*3 + 1
	return []int{first, first + 1, first + 2}
}

// Deduplicate keeps the last entry for every (category, year, month) key,
// preserving the position of its first occurrence.
func Deduplicate(entries []Entry) []Entry {
	positions := make(map[Key]int, len(entries))
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if idx, ok := positions[e.Key()]; ok {
			out[idx] = e
			continue
		}
		positions[e.Key()] = len(out)
		out = append(out, e)
	}
	return out
}
