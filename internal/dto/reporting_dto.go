package dto

// ReportDateParams defines the as-of date query parameter for point-in-time reports.
type ReportDateParams struct {
	AsOf string `form:"asOf" binding:"required"` // YYYY-MM-DD
}

// ReportRangeParams defines the date range query parameters for period reports.
type ReportRangeParams struct {
	From string `form:"from" binding:"required"` // YYYY-MM-DD
	To   string `form:"to" binding:"required"`   // YYYY-MM-DD
}
