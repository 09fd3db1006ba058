package dto

// ReportPeriodParams are the query parameters of period reports.
type ReportPeriodParams struct {
	From string `form:"from"` // YYYY-MM-DD, optional
	To   string `form:"to"`   // YYYY-MM-DD, optional
}

// ReportAsOfParams are the query parameters of point-in-time reports.
type ReportAsOfParams struct {
	AsOf string `form:"asOf"` // YYYY-MM-DD, defaults to today
}
