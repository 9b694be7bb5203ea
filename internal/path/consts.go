package path

const (
	whitespaceRegexp  = `\s+`
	invalidRegexp     = `[^a-z0-9_-]`
	underscoresRegexp = `_{2,}`

	maxNameLen = 50
	suffix     = "_certificate"
	tmpSuffix  = ".tmp"
)
