// README: Calculation request shape: freight modes, container types and per-mode input.
package calculation

type Mode string

const (
	ModeSea  Mode = "sea"
	ModeRail Mode = "rail"
)

// Modes returns the freight modes in display order.
func Modes() []Mode {
	return []Mode{ModeSea, ModeRail}
}

func (m Mode) Valid() bool {
	return m == ModeSea || m == ModeRail
}

type ContainerType string

const (
	Container20GP ContainerType = "20GP"
	Container40GP ContainerType = "40GP"
	Container40HC ContainerType = "40HC"
)

func ContainerTypes() []ContainerType {
	return []ContainerType{Container20GP, Container40GP, Container40HC}
}

// FreightModeInput is one validated leg of a calculation.
type FreightModeInput struct {
	ContainerType    ContainerType `json:"containerType" validate:"required,oneof=20GP 40GP 40HC"`
	CargoWeight      float64       `json:"cargoWeight" validate:"gt=0"`
	Origin           string        `json:"origin" validate:"min=2"`
	Destination      string        `json:"destination" validate:"min=2"`
	Insurance        bool          `json:"insurance"`
	CustomsClearance bool          `json:"customsClearance"`
}

// CalculationRequest is only produced by Validate; treat it as read-only.
type CalculationRequest struct {
	SeaFreight  FreightModeInput `json:"seaFreight"`
	RailFreight FreightModeInput `json:"railFreight"`
}

// Leg returns the input for mode m.
func (r CalculationRequest) Leg(m Mode) FreightModeInput {
	if m == ModeRail {
		return r.RailFreight
	}
	return r.SeaFreight
}

func legField(m Mode) string {
	if m == ModeRail {
		return "railFreight"
	}
	return "seaFreight"
}
