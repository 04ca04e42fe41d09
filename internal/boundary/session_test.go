package boundary_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hireflow/resume-ranker/internal/boundary"
)

func TestSession_EndHereSkipEndHere(t *testing.T) {
	// pages [0..4]; EndHere@1, Skip@2, EndHere@4 -> G0:[0,1] G1:[3,4] skipped={2}
	s, err := boundary.NewSession(5)
	require.NoError(t, err)

	require.NoError(t, s.Include()) // page 0
	require.NoError(t, s.EndHere()) // page 1
	require.NoError(t, s.Skip())    // page 2
	require.NoError(t, s.Include()) // page 3
	require.NoError(t, s.EndHere()) // page 4

	require.True(t, s.Done())
	groups, err := s.Finalize()
	require.NoError(t, err)

	require.Len(t, groups, 2)
	assert.Equal(t, []int{0, 1}, groups[0].Pages)
	assert.Equal(t, []int{3, 4}, groups[1].Pages)
	assert.Equal(t, []int{2}, s.SkippedPages())
	assert.Equal(t, "1-2", groups[0].PageRange())
	assert.Equal(t, "4-5", groups[1].PageRange())
}

func TestSession_ImplicitFinalGroup(t *testing.T) {
	s, err := boundary.NewSession(4)
	require.NoError(t, err)

	require.NoError(t, s.EndHere()) // page 0 -> G0:[0]
	require.NoError(t, s.Include())
	require.NoError(t, s.Include())
	require.NoError(t, s.Include())

	groups, err := s.Finalize()
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, []int{0}, groups[0].Pages)
	assert.Equal(t, []int{1, 2, 3}, groups[1].Pages)
}

func TestSession_TrailingEmptyGroupDiscarded(t *testing.T) {
	s, err := boundary.NewSession(2)
	require.NoError(t, err)

	require.NoError(t, s.Include())
	require.NoError(t, s.EndHere())

	groups, err := s.Finalize()
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, []int{0, 1}, groups[0].Pages)
}

func TestSession_SkipClosesOpenGroup(t *testing.T) {
	// Groups never span a skipped page.
	s, err := boundary.NewSession(4)
	require.NoError(t, err)

	require.NoError(t, s.Include()) // page 0 pending
	require.NoError(t, s.Skip())    // page 1 skipped; pending [0] closed
	require.NoError(t, s.Include()) // page 2
	require.NoError(t, s.Include()) // page 3

	groups, err := s.Finalize()
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, []int{0}, groups[0].Pages)
	assert.Equal(t, []int{2, 3}, groups[1].Pages)
	assert.Equal(t, []int{1}, s.SkippedPages())
}

func TestSession_BackUndoesEndHere(t *testing.T) {
	s, err := boundary.NewSession(5)
	require.NoError(t, err)

	require.NoError(t, s.Include())
	beforeCursor := s.Cursor()
	beforePending := s.PendingStart()
	beforeGroups := len(s.Groups())

	require.NoError(t, s.EndHere())
	require.Len(t, s.Groups(), 1)

	s.Back()
	assert.Equal(t, beforeCursor, s.Cursor())
	assert.Equal(t, beforePending, s.PendingStart())
	assert.Len(t, s.Groups(), beforeGroups, "closed group must reopen")
}

func TestSession_BackUndoesSkip(t *testing.T) {
	s, err := boundary.NewSession(3)
	require.NoError(t, err)

	require.NoError(t, s.Skip())
	require.Equal(t, []int{0}, s.SkippedPages())

	s.Back()
	assert.Empty(t, s.SkippedPages())
	assert.Equal(t, 0, s.Cursor())
}

func TestSession_BackAtStartIsNoop(t *testing.T) {
	s, err := boundary.NewSession(3)
	require.NoError(t, err)
	s.Back()
	assert.Equal(t, 0, s.Cursor())
	assert.False(t, s.Done())
}

func TestSession_CommandsAfterDoneRejected(t *testing.T) {
	s, err := boundary.NewSession(1)
	require.NoError(t, err)
	require.NoError(t, s.EndHere())
	assert.Error(t, s.Include())
	assert.Error(t, s.EndHere())
	assert.Error(t, s.Skip())
}

func TestSession_FinalizeBeforeDoneRejected(t *testing.T) {
	s, err := boundary.NewSession(3)
	require.NoError(t, err)
	require.NoError(t, s.Include())
	_, err = s.Finalize()
	assert.Error(t, err)
}

func TestSession_ZeroPagesRejected(t *testing.T) {
	_, err := boundary.NewSession(0)
	assert.Error(t, err)
}

// Property: for arbitrary command sequences, group page sets are pairwise
// disjoint and together with the skipped set cover every page exactly once.
func TestSession_DisjointCover(t *testing.T) {
	walks := [][]string{
		{"E", "E", "E", "E", "E"},
		{"S", "S", "S", "S", "S"},
		{"I", "I", "I", "I", "E"},
		{"I", "E", "S", "I", "E"},
		{"S", "I", "I", "E", "S"},
		{"E", "S", "E", "S", "I"},
		{"I", "B", "I", "E", "S", "I", "I"},
		{"I", "I", "E", "B", "B", "S", "I", "E", "I"},
	}

	for _, walk := range walks {
		const pageCount = 5
		s, err := boundary.NewSession(pageCount)
		require.NoError(t, err)

		for _, c := range walk {
			if s.Done() && c != "B" {
				break
			}
			switch c {
			case "I":
				require.NoError(t, s.Include())
			case "E":
				require.NoError(t, s.EndHere())
			case "S":
				require.NoError(t, s.Skip())
			case "B":
				s.Back()
			}
		}
		for !s.Done() {
			require.NoError(t, s.Include())
		}

		groups, err := s.Finalize()
		require.NoError(t, err)

		seen := make(map[int]int)
		for _, g := range groups {
			require.NotEmpty(t, g.Pages, "zero-page groups are never emitted")
			for i := 1; i < len(g.Pages); i++ {
				require.Equal(t, g.Pages[i-1]+1, g.Pages[i], "group pages must be contiguous")
			}
			for _, p := range g.Pages {
				seen[p]++
			}
		}
		for _, p := range s.SkippedPages() {
			seen[p]++
		}

		for p := 0; p < pageCount; p++ {
			assert.Equal(t, 1, seen[p], "walk %v: page %d must appear exactly once", walk, p)
		}

		// ascending GroupID <-> ascending start page
		for i := 1; i < len(groups); i++ {
			assert.Greater(t, groups[i].StartPage(), groups[i-1].StartPage())
			assert.Equal(t, i, groups[i].ID)
		}
	}
}

func TestGroupText_JoinsInPageOrder(t *testing.T) {
	texts := []string{"page zero", "page one", "", "page three"}
	g := boundary.ResumeGroup{ID: 0, Pages: []int{0, 1}}

	out := boundary.GroupText(g, texts)
	assert.Contains(t, out, "--- Start Page 1 ---\npage zero\n--- End Page 1 ---")
	assert.Contains(t, out, "--- Start Page 2 ---\npage one\n--- End Page 2 ---")
	assert.Less(t, strings.Index(out, "page zero"), strings.Index(out, "page one"))
}

func TestGroupText_EmptyAndMissingPages(t *testing.T) {
	texts := []string{"a", ""}
	g := boundary.ResumeGroup{ID: 0, Pages: []int{1, 2}}
	out := boundary.GroupText(g, texts)
	assert.Contains(t, out, "--- Warning: Page 2 content is empty ---")
	assert.Contains(t, out, "--- Error: Page 3 not found ---")
}
