package dispatch

import "github.com/dgallion1/pdfreader/internal/query"

// Tool names.
const (
	ToolGetContent = "get_pdf_content"
	ToolSearch     = "search_pdf"
	ToolInfo       = "get_pdf_info"
	ToolExcerpt    = "get_pdf_excerpt"
)

// DocumentURI identifies the single resource the server exposes.
const DocumentURI = "pdf://document"

const (
	placeholderName     = "PDF Document"
	resourceDescription = "The loaded PDF document content"
	resourceMIMEType    = "text/plain"
)

// Property is one parameter of a tool input schema.
type Property struct {
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
	Default     any    `json:"default,omitempty"`
}

// Schema is a JSON-Schema object describing tool arguments.
type Schema struct {
	Type       string              `json:"type"`
	Properties map[string]Property `json:"properties"`
	Required   []string            `json:"required"`
}

// Tool describes a callable operation.
type Tool struct {
	Name        string
	Description string
	InputSchema Schema
}

// Resource describes an addressable piece of content.
type Resource struct {
	URI         string
	Name        string
	Description string
	MIMEType    string
}

func objectSchema(props map[string]Property, required ...string) Schema {
	if props == nil {
		props = map[string]Property{}
	}
	if required == nil {
		required = []string{}
	}
	return Schema{Type: "object", Properties: props, Required: required}
}

// catalog lists the tools in the order they are advertised.
var catalog = []Tool{
	{
		Name:        ToolGetContent,
		Description: "Get the full text content of the loaded PDF document",
		InputSchema: objectSchema(nil),
	},
	{
		Name:        ToolSearch,
		Description: "Search for specific text within the PDF document",
		InputSchema: objectSchema(map[string]Property{
			"query": {
				Type:        "string",
				Description: "Text to search for in the PDF",
			},
			"case_sensitive": {
				Type:        "boolean",
				Description: "Whether to perform case-sensitive search",
				Default:     false,
			},
		}, "query"),
	},
	{
		Name:        ToolInfo,
		Description: "Get metadata and information about the loaded PDF",
		InputSchema: objectSchema(nil),
	},
	{
		Name:        ToolExcerpt,
		Description: "Get a specific excerpt from the PDF by character range",
		InputSchema: objectSchema(map[string]Property{
			"start": {
				Type:        "number",
				Description: "Starting character position",
			},
			"length": {
				Type:        "number",
				Description: "Number of characters to extract",
				Default:     query.DefaultExcerptLength,
			},
		}, "start"),
	},
}
