package placeholder

const (
	tagRegexp  = `\{\{([^}]+)\}\}`
	openDelim  = "{{"
	closeDelim = "}}"
)
