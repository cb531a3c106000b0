package compare

// BuildPath maps a request triple to the server route it queries:
//
//	id, all       -> ids/{key}
//	id, X         -> X/ids/{key}
//	package, all  -> pkgs/{key}
//	package, X    -> X/pkgs/{key}
//
// The key is used verbatim. An unknown mode yields an empty path.
func BuildPath(mode Mode, category, key string) string {
	var resource string
	switch mode {
	case ModeID:
		resource = "ids/" + key
	case ModePackage:
		resource = "pkgs/" + key
	default:
		return ""
	}

	if category == CategoryAll {
		return resource
	}
	return category + "/" + resource
}
