package ipc

// These constants must stay in sync with the host bridge.
const (
	TypeHello  = "hello"
	TypeAck    = "ack"
	TypeTick   = "tick"
	TypeOrders = "orders"
	TypeError  = "error"
)

type HelloMessage struct {
	Team string    `json:"team"`
	Grid *GridData `json:"grid,omitempty"`
}

// GridData carries the occupancy map. Optional; if absent the agent runs
// without one.
type GridData struct {
	Cols  int   `json:"cols"`
	Rows  int   `json:"rows"`
	Cells []int `json:"cells"`
}

type AckMessage struct {
	Status string `json:"status"`
}

// TickMessage is the per-tick world snapshot. Factions are a list so their
// order is preserved; the agent's own faction is found by name.
type TickMessage struct {
	Time     float64        `json:"t"`
	Dt       float64        `json:"dt"`
	Factions []FactionState `json:"factions"`
}

type FactionState struct {
	Name  string         `json:"name"`
	Bases []BaseState    `json:"bases,omitempty"`
	Tanks []VehicleState `json:"tanks,omitempty"`
	Jets  []VehicleState `json:"jets,omitempty"`
	Ships []VehicleState `json:"ships,omitempty"`
}

// BaseState describes a base. Crystal, Mines and Costs are only sent for
// the agent's own bases.
type BaseState struct {
	UID     string             `json:"uid"`
	X       float64            `json:"x"`
	Y       float64            `json:"y"`
	Crystal float64            `json:"crystal,omitempty"`
	Mines   int                `json:"mines,omitempty"`
	Costs   map[string]float64 `json:"costs,omitempty"`
}

// VehicleState describes a vehicle. Heading and owner fields are only sent
// for the agent's own vehicles.
type VehicleState struct {
	UID     string  `json:"uid"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Heading float64 `json:"heading,omitempty"`
	Owner   string  `json:"owner,omitempty"`
	OwnerX  float64 `json:"ownerX,omitempty"`
	OwnerY  float64 `json:"ownerY,omitempty"`
}

// OrdersMessage answers a tick with the commands issued during it.
type OrdersMessage struct {
	Time     float64    `json:"t"`
	Commands []Envelope `json:"commands"`
}

// ErrorMessage answers a tick that failed. Fatal means the agent's view of
// its forces can no longer be trusted; the host decides what to do.
type ErrorMessage struct {
	Fatal bool   `json:"fatal"`
	Error string `json:"error"`
}
