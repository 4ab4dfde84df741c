package assets

// Built-in style names.
const (
	StyleReadable   = "readable"
	StyleThread     = "4chan"
	StyleCaiChat    = "cai-chat"
	StyleBubbleChat = "bubble-chat"
	StyleInstruct   = "instruct"
)

// Built-in template names, one per conversation mode.
const (
	TemplateCaiChat  = "cai-chat"
	TemplateChat     = "chat"
	TemplateInstruct = "instruct"
)

// StyleNames lists every built-in style.
func StyleNames() []string {
	return []string{StyleReadable, StyleThread, StyleCaiChat, StyleBubbleChat, StyleInstruct}
}

// TemplateNames lists every built-in template.
func TemplateNames() []string {
	return []string{TemplateCaiChat, TemplateChat, TemplateInstruct}
}
