package parser

const (
	typeRegexp = `\.([a-zA-Z0-9]+)$`
)

// File types.
const (
	XLSX = "xlsx"
	XLS  = "xls"
	DOCX = "docx"
)
