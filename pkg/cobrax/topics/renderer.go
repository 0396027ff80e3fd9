package topics

// Renderer formats a topic for display. ext is the topic file's extension,
// such as ".md".
type Renderer interface {
	Render(content, ext string) string
}

// PlainRenderer prints topics verbatim
type PlainRenderer struct{}

// Render implements Renderer
func (PlainRenderer) Render(content, _ string) string { return content }
