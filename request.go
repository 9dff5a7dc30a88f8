package sift

// ToolRequest is a request to perform one allow-listed operation. It is
// produced only by parsing reasoning-component output and is immutable
// once constructed. Tool is never empty.
type ToolRequest struct {
	Tool      string
	Arguments map[string]any
}
