package identify

// extensionTags maps a lowercased file extension (without the dot) to the
// type tags it implies. The tag names follow the convention hook authors
// already use in their manifests.
var extensionTags = map[string][]string{
	"bash":  {"bash", "shell"},
	"c":     {"c"},
	"cc":    {"c++"},
	"cfg":   {"ini"},
	"cpp":   {"c++"},
	"cs":    {"c#"},
	"css":   {"css"},
	"csv":   {"csv"},
	"go":    {"go"},
	"h":     {"header", "c"},
	"hpp":   {"header", "c++"},
	"html":  {"html"},
	"ini":   {"ini"},
	"java":  {"java"},
	"js":    {"javascript"},
	"json":  {"json"},
	"jsx":   {"jsx", "javascript"},
	"ksh":   {"ksh", "shell"},
	"lua":   {"lua"},
	"md":    {"markdown"},
	"php":   {"php"},
	"proto": {"proto"},
	"py":    {"python"},
	"pyi":   {"pyi", "python"},
	"rb":    {"ruby"},
	"rs":    {"rust"},
	"rst":   {"rst"},
	"scss":  {"scss", "css"},
	"sh":    {"sh", "shell"},
	"sql":   {"sql"},
	"svg":   {"svg", "image"},
	"swift": {"swift"},
	"tf":    {"terraform"},
	"toml":  {"toml"},
	"ts":    {"ts"},
	"tsx":   {"tsx", "ts"},
	"txt":   {"plain-text"},
	"xml":   {"xml"},
	"yaml":  {"yaml"},
	"yml":   {"yaml"},
	"zsh":   {"zsh", "shell"},

	// Common binary formats, tagged so exclude_types can drop them by name.
	"gif":  {"gif", "image"},
	"ico":  {"icon", "image"},
	"jpeg": {"jpeg", "image"},
	"jpg":  {"jpeg", "image"},
	"pdf":  {"pdf"},
	"png":  {"png", "image"},
	"webp": {"webp", "image"},
	"zip":  {"zip", "archive"},
	"gz":   {"gzip", "archive"},
	"tar":  {"tar", "archive"},
}
