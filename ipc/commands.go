package ipc

// Command type constants. These must stay in sync with the host bridge.
const (
	TypeBuildMine  = "build_mine"
	TypeBuild      = "build"
	TypeSetHeading = "set_heading"
	TypeGoto       = "goto"
	TypeConvert    = "convert"
)

type BuildMineCommand struct {
	Base string `json:"base"`
}

// BuildCommand orders a unit. UID is minted by the agent and must be
// adopted by the host for the new unit.
type BuildCommand struct {
	Base    string  `json:"base"`
	Kind    string  `json:"kind"` // "tank", "jet" or "ship"
	Heading float64 `json:"heading"`
	UID     string  `json:"uid"`
}

type SetHeadingCommand struct {
	UID     string  `json:"uid"`
	Heading float64 `json:"heading"`
}

type GotoCommand struct {
	UID string  `json:"uid"`
	X   float64 `json:"x"`
	Y   float64 `json:"y"`
}

type ConvertCommand struct {
	UID string `json:"uid"`
}
