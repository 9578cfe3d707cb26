package pagination

import "testing"

func TestNew(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		limit      int
		totalCount int64
		want       Pagination
	}{
		{
			name: "first of many", page: 1, limit: 20, totalCount: 45,
			want: Pagination{CurrentPage: 1, TotalPages: 3, TotalCount: 45, Limit: 20, HasNextPage: true, HasPrevPage: false, StartIndex: 1, EndIndex: 20},
		},
		{
			name: "middle page", page: 2, limit: 20, totalCount: 45,
			want: Pagination{CurrentPage: 2, TotalPages: 3, TotalCount: 45, Limit: 20, HasNextPage: true, HasPrevPage: true, StartIndex: 21, EndIndex: 40},
		},
		{
			name: "last short page", page: 3, limit: 20, totalCount: 45,
			want: Pagination{CurrentPage: 3, TotalPages: 3, TotalCount: 45, Limit: 20, HasNextPage: false, HasPrevPage: true, StartIndex: 41, EndIndex: 45},
		},
		{
			name: "empty result set", page: 1, limit: 20, totalCount: 0,
			want: Pagination{CurrentPage: 1, TotalPages: 0, TotalCount: 0, Limit: 20, HasNextPage: false, HasPrevPage: false, StartIndex: 1, EndIndex: 0},
		},
		{
			name: "page past the end is not clamped", page: 9, limit: 10, totalCount: 25,
			want: Pagination{CurrentPage: 9, TotalPages: 3, TotalCount: 25, Limit: 10, HasNextPage: false, HasPrevPage: true, StartIndex: 81, EndIndex: 25},
		},
		{
			name: "exact multiple", page: 2, limit: 10, totalCount: 20,
			want: Pagination{CurrentPage: 2, TotalPages: 2, TotalCount: 20, Limit: 10, HasNextPage: false, HasPrevPage: true, StartIndex: 11, EndIndex: 20},
		},
		{
			name: "defaults applied", page: 0, limit: 0, totalCount: 5,
			want: Pagination{CurrentPage: 1, TotalPages: 1, TotalCount: 5, Limit: 20, HasNextPage: false, HasPrevPage: false, StartIndex: 1, EndIndex: 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := New(tt.page, tt.limit, tt.totalCount)
			if got != tt.want {
				t.Errorf("New(%d, %d, %d) = %+v, want %+v", tt.page, tt.limit, tt.totalCount, got, tt.want)
			}
		})
	}
}

func TestOffset(t *testing.T) {
	p := New(3, 25, 1000)
	if got := p.Offset(); got != 50 {
		t.Errorf("Offset() = %d, want 50", got)
	}
}
