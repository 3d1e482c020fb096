package tui

import (
	"testing"

	"github.com/Stuart-0728/cqnu/internal/api"
)

func TestSearchMatchesBeyondTitle(t *testing.T) {
	v := NewActivitiesView()
	v.page.Activities = []api.Activity{
		{ID: 1, Title: "Hiking Trip", Description: "A day in the hills", Location: "North Gate"},
		{ID: 2, Title: "Chess Night", Description: "Casual games", Location: "Library"},
		{ID: 3, Title: "Book Club", Description: "Monthly library meetup", Location: "Room 204"},
	}

	cases := []struct {
		query string
		want  []int
	}{
		{"hiking", []int{1}},     // title
		{"hills", []int{1}},      // description
		{"library", []int{2, 3}}, // location on one, description on the other
		{"CHESS", []int{2}},      // case-insensitive
		{"", []int{1, 2, 3}},     // empty query shows everything
		{"banquet", nil},         // no match
	}
	for _, tc := range cases {
		v.search.SetValue(tc.query)
		var got []int
		for _, a := range v.visible() {
			got = append(got, a.ID)
		}
		if len(got) != len(tc.want) {
			t.Errorf("query %q: got %v, want %v", tc.query, got, tc.want)
			continue
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Errorf("query %q: got %v, want %v", tc.query, got, tc.want)
				break
			}
		}
	}
}
