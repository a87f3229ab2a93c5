package roadmap

// Bucket is the ordered run of initiatives scheduled in one quarter.
type Bucket struct {
	Quarter     Quarter
	Initiatives []Initiative
}

// Grouping partitions a roadmap by quarter, one bucket per registry quarter
// in timeline order.
type Grouping []Bucket

// GroupByQuarter buckets the initiatives by quarter, keeping their relative
// order. It is recomputed on every render.
func GroupByQuarter(initiatives []Initiative) Grouping {
	qs := Quarters()
	out := make(Grouping, len(qs))
	slot := make(map[Quarter]int, len(qs))
	for i, q := range qs {
		out[i] = Bucket{Quarter: q}
		slot[q] = i
	}
	for _, init := range initiatives {
		if i, ok := slot[init.Quarter]; ok {
			out[i].Initiatives = append(out[i].Initiatives, init)
		}
	}
	return out
}

// Bucket returns the initiatives scheduled in q.
func (g Grouping) Bucket(q Quarter) []Initiative {
	for _, b := range g {
		if b.Quarter == q {
			return b.Initiatives
		}
	}
	return nil
}

// Tallest returns the size of the largest bucket.
func (g Grouping) Tallest() int {
	tallest := 0
	for _, b := range g {
		if len(b.Initiatives) > tallest {
			tallest = len(b.Initiatives)
		}
	}
	return tallest
}

// Tally is the number of initiatives in one status.
type Tally struct {
	Status StatusInfo
	Count  int
}

// CountByStatus tallies the whole collection per status, in registry order.
// Every summary view reads its numbers from here.
func CountByStatus(initiatives []Initiative) []Tally {
	infos := Statuses()
	out := make([]Tally, len(infos))
	for i, info := range infos {
		out[i].Status = info
		for _, init := range initiatives {
			if init.Status == info.Value {
				out[i].Count++
			}
		}
	}
	return out
}
