package domain

// ToolGroup partitions the catalogue into read and write tools.
type ToolGroup string

const (
	ToolGroupRead  ToolGroup = "read"
	ToolGroupWrite ToolGroup = "write"
)

// ToolGroups lists the groups in dispatch order.
var ToolGroups = []ToolGroup{ToolGroupRead, ToolGroupWrite}
