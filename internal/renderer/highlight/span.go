package highlight

import "sort"

// Span is a classified range of chars [Start, End).
type Span struct {
	Start    int
	End      int
	Category Category
}

// Len returns the number of chars in the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// Reduce flattens an event stream into sorted, contiguous spans covering
// [0, charLen). byteToChar converts the events' byte offsets.
//
// Scopes nest; a source range takes the category of the innermost open
// scope. Names outside the palette are transparent: their range keeps the
// enclosing scope's category, or CategoryNone at the top level. Ranges not
// covered by any source event, including bytes a grammar appends past the
// end of the text, are clamped or filled with CategoryNone.
func Reduce(events []Event, byteToChar func(int) int, charLen int) []Span {
	var (
		stack []Category
		out   []Span
		pos   int
	)

	emit := func(start, end int, c Category) {
		if end <= start {
			return
		}
		if n := len(out); n > 0 && out[n-1].Category == c && out[n-1].End == start {
			out[n-1].End = end
			return
		}
		out = append(out, Span{Start: start, End: end, Category: c})
	}

	for _, e := range events {
		switch e.Kind {
		case EventStart:
			c, ok := CategoryFromName(e.Name)
			if !ok && len(stack) > 0 {
				c = stack[len(stack)-1]
			}
			stack = append(stack, c)
		case EventEnd:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		case EventSource:
			start := clamp(byteToChar(e.Start), 0, charLen)
			end := clamp(byteToChar(e.End), 0, charLen)
			if end <= pos {
				continue
			}
			if start > pos {
				emit(pos, start, CategoryNone)
			}
			c := CategoryNone
			if len(stack) > 0 {
				c = stack[len(stack)-1]
			}
			emit(max(start, pos), end, c)
			pos = end
		}
	}
	emit(pos, charLen, CategoryNone)
	return out
}

// Plain returns the span list of unhighlighted text of charLen chars.
func Plain(charLen int) []Span {
	if charLen <= 0 {
		return nil
	}
	return []Span{{Start: 0, End: charLen, Category: CategoryNone}}
}

// Clip returns the parts of spans that overlap [start, end), trimmed to
// that range. spans must be sorted.
func Clip(spans []Span, start, end int) []Span {
	i := sort.Search(len(spans), func(i int) bool { return spans[i].End > start })
	var out []Span
	for ; i < len(spans) && spans[i].Start < end; i++ {
		s := spans[i]
		s.Start = max(s.Start, start)
		s.End = min(s.End, end)
		if s.End > s.Start {
			out = append(out, s)
		}
	}
	return out
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
