package game

// categoryList is an insertion-ordered category association: a slice for
// iteration order plus a name index for O(1) lookup. Plain maps do not
// guarantee the required first-encounter iteration order.
type categoryList struct {
	index map[string]int
	cats  []Category
}

func (l *categoryList) add(name string, c Clue) {
	if l.index == nil {
		l.index = make(map[string]int)
	}
	i, ok := l.index[name]
	if !ok {
		i = len(l.cats)
		l.index[name] = i
		l.cats = append(l.cats, Category{Name: name})
	}
	l.cats[i].Clues = append(l.cats[i].Clues, c)
}

// categories returns the accumulated categories in insertion order. The
// result is never nil so empty rounds serialize as empty arrays.
func (l *categoryList) categories() []Category {
	out := make([]Category, len(l.cats))
	copy(out, l.cats)
	return out
}
