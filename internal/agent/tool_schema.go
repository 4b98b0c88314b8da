package agent

// ToolSchema describes the JSON schema for tool parameters.
type ToolSchema struct {
	Type                 string                `json:"type,omitempty"`
	Description          string                `json:"description,omitempty"`
	Properties           map[string]ToolSchema `json:"properties,omitempty"`
	Required             []string              `json:"required,omitempty"`
	AdditionalProperties *bool                 `json:"additionalProperties,omitempty"`
}

// ToolDefinition describes a callable tool exposed to the model.
type ToolDefinition struct {
	Name        string
	Description string
	Parameters  *ToolSchema
	Strict      bool
}

// BoolPointer returns a pointer to the provided bool value.
func BoolPointer(value bool) *bool {
	return &value
}

// ObjectSchema builds a schema for a JSON object.
func ObjectSchema(properties map[string]ToolSchema, required []string, additionalProperties *bool) ToolSchema {
	return ToolSchema{
		Type:                 "object",
		Properties:           properties,
		Required:             required,
		AdditionalProperties: additionalProperties,
	}
}

// StringSchema builds a schema for a described JSON string.
func StringSchema(description string) ToolSchema {
	return ToolSchema{Type: "string", Description: description}
}

// Tool names understood by the dialogue.
const (
	ToolReadFile   = "ReadFile"
	ToolWriteFile  = "WriteFile"
	ToolModifyFile = "ModifyFile"
)

// Argument keys shared by the file tools.
const (
	ArgFileName    = "file_name"
	ArgFileContent = "file_content"
	ArgDiffContent = "diff_content"
)

// ToolDeclarations returns the fixed set of file tools offered to the model.
func ToolDeclarations() []ToolDefinition {
	return []ToolDefinition{
		fileTool(ToolReadFile, "Reading file, return text content of file.",
			map[string]ToolSchema{
				ArgFileName: StringSchema("file name of reading"),
			}),
		fileTool(ToolWriteFile, "Writing content to file.",
			map[string]ToolSchema{
				ArgFileName:    StringSchema("file name of output/writing"),
				ArgFileContent: StringSchema("content of output"),
			}),
		fileTool(ToolModifyFile, "Modify file, output diff content using 'patch format'.",
			map[string]ToolSchema{
				ArgFileName:    StringSchema("file name of modify"),
				ArgDiffContent: StringSchema("content of output, using 'patch format'"),
			}),
	}
}

func fileTool(name, description string, properties map[string]ToolSchema) ToolDefinition {
	required := make([]string, 0, len(properties))
	for _, key := range []string{ArgFileName, ArgFileContent, ArgDiffContent} {
		if _, ok := properties[key]; ok {
			required = append(required, key)
		}
	}
	schema := ObjectSchema(properties, required, BoolPointer(false))
	return ToolDefinition{Name: name, Description: description, Parameters: &schema, Strict: true}
}
