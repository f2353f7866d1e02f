package domain

// Report rows are read-only aggregation results for the admin dashboard.
// Ordering ties are broken by the trailing name/title/week column so results
// are stable across runs.

type TopRatedRow struct {
	Name          string  `json:"name"`
	Category      string  `json:"category"`
	AverageRating float64 `json:"average_rating"`
	ReviewCount   int     `json:"review_count"`
}

type MostReviewedRow struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	ReviewCount int    `json:"review_count"`
}

type FavoritesRow struct {
	Name          string `json:"name"`
	Category      string `json:"category"`
	FavoriteCount int    `json:"favorite_count"`
}

type DealPerformanceRow struct {
	Title     string `json:"title"`
	Business  string `json:"business"`
	CopyCount int    `json:"copy_count"`
	ViewCount int    `json:"view_count"`
}

type CategoryCountRow struct {
	Category      string `json:"category"`
	BusinessCount int    `json:"business_count"`
}

// WeeklyActivityRow buckets one event type by ISO year-week.
type WeeklyActivityRow struct {
	Week   string `json:"week"`
	Count  int    `json:"count"`
	Metric string `json:"metric"`
}
