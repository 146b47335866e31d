package collection

import "github.com/JaimeStill/catalog-console/pkg/openapi"

type spec struct {
	State      *openapi.Operation
	Load       *openapi.Operation
	Table      *openapi.Operation
	OpenCreate *openapi.Operation
	OpenEdit   *openapi.Operation
	CloseForm  *openapi.Operation
	Submit     *openapi.Operation
	Remove     *openapi.Operation
	Children   *openapi.Operation
}

var Spec = spec{
	State: &openapi.Operation{
		Summary: "Screen state",
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Current state", "State"),
		},
	},
	Load: &openapi.Operation{
		Summary:     "Load collection",
		Description: "Fetch the collection and resolve references. Failures keep the previous snapshot and set error.",
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Resulting state", "State"),
		},
	},
	Table: &openapi.Operation{
		Summary: "Rendered table",
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Snapshot rendered through the screen columns", "Table"),
		},
	},
	OpenCreate: &openapi.Operation{
		Summary: "Open create form",
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Resulting state", "State"),
		},
	},
	OpenEdit: &openapi.Operation{
		Summary: "Open edit form",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Record ID"),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Resulting state", "State"),
		},
	},
	CloseForm: &openapi.Operation{
		Summary: "Close form",
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Resulting state", "State"),
		},
	},
	Submit: &openapi.Operation{
		Summary:     "Submit form",
		Description: "Submit the open form. The draft is a JSON object, or a multipart body with a JSON \"fields\" part and an optional \"image\" file.",
		RequestBody: openapi.RequestBodyMultipart("Draft and optional image", map[string]*openapi.Property{
			"fields": {Type: "string", Description: "JSON object applied over the draft"},
			"image":  {Type: "string", Format: "binary", Description: "Image uploaded before saving"},
		}),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Resulting state", "State"),
			400: openapi.ResponseRef("BadRequest"),
			413: {Description: "File too large"},
			415: {Description: "Uploaded file is not an image"},
		},
	},
	Remove: &openapi.Operation{
		Summary: "Delete record",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Record ID"),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Resulting state", "State"),
		},
	},
	Children: &openapi.Operation{
		Summary:     "List child records",
		Description: "Records of the child collection referencing the given record",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Parent record ID"),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Child records", "Records"),
			503: {Description: "Store unavailable"},
		},
	},
}

// Schemas returns the component schemas referenced by Spec.
func Schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"Record": {
			Type:     "object",
			Required: []string{"id", "fields"},
			Properties: map[string]*openapi.Property{
				"id":     {Type: "string"},
				"fields": {Type: "object"},
			},
		},
		"Records": {
			Type:  "array",
			Items: openapi.SchemaRef("Record"),
		},
		"State": {
			Type: "object",
			Properties: map[string]*openapi.Property{
				"screen":     {Type: "string"},
				"title":      {Type: "string"},
				"collection": {Type: "string"},
				"read_only":  {Type: "boolean"},
				"status":     {Type: "string", Example: "ready"},
				"error":      {Type: "string"},
				"error_kind": {Type: "string", Example: "store_unavailable"},
				"records":    {Type: "array"},
				"form":       {Type: "object"},
				"submitting": {Type: "boolean"},
			},
		},
		"Table": {
			Type: "object",
			Properties: map[string]*openapi.Property{
				"screen":  {Type: "string"},
				"title":   {Type: "string"},
				"headers": {Type: "array"},
				"rows":    {Type: "array"},
			},
		},
	}
}
