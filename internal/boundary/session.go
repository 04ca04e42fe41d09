// Package boundary implements the forward page walk that partitions an
// ordered page sequence into contiguous resume groups. The walk is driven by
// per-page operator commands (Include, EndHere, Skip, Back) and is the only
// way groups are formed, so contiguity holds by construction rather than by
// post-hoc validation.
package boundary

import (
	"fmt"

	"github.com/hireflow/resume-ranker/internal/common"
)

// AssignmentState is the exclusive state of a single page.
type AssignmentState int

const (
	Unassigned AssignmentState = iota
	Skipped
	Grouped
)

// PageAssignment maps one page index to its state. GroupID is meaningful
// only when State == Grouped.
type PageAssignment struct {
	Page    int
	State   AssignmentState
	GroupID int
}

// ResumeGroup is a finalized, contiguous run of pages identified as one
// resume. IDs are sequential and ascend with the starting page index.
type ResumeGroup struct {
	ID    int
	Pages []int
}

// StartPage returns the first page index of the group.
func (g ResumeGroup) StartPage() int { return g.Pages[0] }

// EndPage returns the last page index of the group.
func (g ResumeGroup) EndPage() int { return g.Pages[len(g.Pages)-1] }

// PageRange renders the group's 1-based page span, e.g. "3-5" or "7".
func (g ResumeGroup) PageRange() string {
	if len(g.Pages) == 1 {
		return fmt.Sprintf("%d", g.Pages[0]+1)
	}
	return fmt.Sprintf("%d-%d", g.StartPage()+1, g.EndPage()+1)
}

type command int

const (
	cmdInclude command = iota
	cmdEndHere
	cmdSkip
)

// Session is the boundary-definition walk over a fixed page count. The
// cursor starts at page 0; every advancing command consumes exactly one page
// and is recorded, so Back can undo the most recent decision by replay.
type Session struct {
	pageCount int
	decisions []command

	// derived from decisions; rebuilt after every mutation
	cursor       int
	pendingStart int
	groups       []ResumeGroup
	skipped      []int
}

// NewSession starts a walk over pageCount pages.
func NewSession(pageCount int) (*Session, error) {
	if pageCount <= 0 {
		return nil, common.NewAppError("BOUNDARY_EMPTY", "document has no pages", common.ErrInvalidInput)
	}
	s := &Session{pageCount: pageCount}
	s.rebuild()
	return s, nil
}

// PageCount returns the total number of pages under review.
func (s *Session) PageCount() int { return s.pageCount }

// Cursor returns the page index currently under review.
func (s *Session) Cursor() int { return s.cursor }

// PendingStart returns the first page index of the open group.
func (s *Session) PendingStart() int { return s.pendingStart }

// PendingPages returns how many pages the open group has accumulated,
// not counting the page under the cursor.
func (s *Session) PendingPages() int { return s.cursor - s.pendingStart }

// Done reports whether the cursor has consumed every page.
func (s *Session) Done() bool { return s.cursor >= s.pageCount }

// Include assigns the current page to the open group and advances.
func (s *Session) Include() error {
	return s.push(cmdInclude)
}

// EndHere closes the open group at the current page (inclusive). The closed
// group becomes immutable; a new empty group opens at the next page.
func (s *Session) EndHere() error {
	return s.push(cmdEndHere)
}

// Skip marks the current page as excluded from all groups and advances. A
// non-empty open group is closed at the previous page first: groups are
// contiguous runs and never span a skipped page.
func (s *Session) Skip() error {
	return s.push(cmdSkip)
}

// Back moves the cursor to the previous page, undoing the decision recorded
// there (reopening a closed group when that decision was EndHere). No-op at
// page 0.
func (s *Session) Back() {
	if len(s.decisions) == 0 {
		return
	}
	s.decisions = s.decisions[:len(s.decisions)-1]
	s.rebuild()
}

func (s *Session) push(c command) error {
	if s.Done() {
		return common.NewAppError("BOUNDARY_DONE", "all pages already reviewed", common.ErrInvalidInput)
	}
	s.decisions = append(s.decisions, c)
	s.rebuild()
	return nil
}

// rebuild recomputes cursor, open-group start, closed groups and skipped
// pages by replaying the decision log.
func (s *Session) rebuild() {
	s.cursor = 0
	s.pendingStart = 0
	s.groups = s.groups[:0]
	s.skipped = s.skipped[:0]

	closeRange := func(from, to int) {
		pages := make([]int, 0, to-from+1)
		for p := from; p <= to; p++ {
			pages = append(pages, p)
		}
		s.groups = append(s.groups, ResumeGroup{ID: len(s.groups), Pages: pages})
	}

	for _, c := range s.decisions {
		switch c {
		case cmdInclude:
			s.cursor++
		case cmdEndHere:
			closeRange(s.pendingStart, s.cursor)
			s.cursor++
			s.pendingStart = s.cursor
		case cmdSkip:
			if s.cursor > s.pendingStart {
				closeRange(s.pendingStart, s.cursor-1)
			}
			s.skipped = append(s.skipped, s.cursor)
			s.cursor++
			s.pendingStart = s.cursor
		}
	}
}

// Finalize ends the definition phase. A non-empty open group is implicitly
// closed as the final group; an empty one is discarded. The returned groups
// are immutable.
func (s *Session) Finalize() ([]ResumeGroup, error) {
	if !s.Done() {
		return nil, common.NewAppError("BOUNDARY_INCOMPLETE",
			fmt.Sprintf("%d of %d pages reviewed", s.cursor, s.pageCount), common.ErrInvalidInput)
	}
	groups := make([]ResumeGroup, len(s.groups))
	copy(groups, s.groups)
	if s.pendingStart < s.pageCount {
		pages := make([]int, 0, s.pageCount-s.pendingStart)
		for p := s.pendingStart; p < s.pageCount; p++ {
			pages = append(pages, p)
		}
		groups = append(groups, ResumeGroup{ID: len(groups), Pages: pages})
	}
	return groups, nil
}

// Groups returns the groups closed so far during the walk.
func (s *Session) Groups() []ResumeGroup {
	out := make([]ResumeGroup, len(s.groups))
	copy(out, s.groups)
	return out
}

// SkippedPages returns the pages excluded so far, in walk order.
func (s *Session) SkippedPages() []int {
	out := make([]int, len(s.skipped))
	copy(out, s.skipped)
	return out
}

// Assignments returns the exclusive per-page state for every reviewed page
// given the finalized groups. Pages past the cursor are Unassigned.
func Assignments(pageCount int, groups []ResumeGroup, skipped []int) []PageAssignment {
	out := make([]PageAssignment, pageCount)
	for i := range out {
		out[i] = PageAssignment{Page: i, State: Unassigned}
	}
	for _, g := range groups {
		for _, p := range g.Pages {
			out[p] = PageAssignment{Page: p, State: Grouped, GroupID: g.ID}
		}
	}
	for _, p := range skipped {
		out[p] = PageAssignment{Page: p, State: Skipped}
	}
	return out
}
