package interaction

// State is the step the machine is waiting on
type State int

const (
	Idle State = iota
	CapturingPoint2
	CapturingAngleArm2
	PlacingOffset
	DefiningPlaneOrigin
	DefiningPlaneXAxis
	DefiningPlaneInPlanePoint
	DefiningPlaneFromFace
	TranslatingPlane
)

var stateNames = [...]string{
	"idle",
	"capturing_point_2",
	"capturing_angle_arm_2",
	"placing_offset",
	"defining_plane_origin",
	"defining_plane_xaxis",
	"defining_plane_inplane_point",
	"defining_plane_from_face",
	"translating_plane",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// IsPlaneWorkflow reports whether the state belongs to plane redefinition
func (s State) IsPlaneWorkflow() bool {
	return s >= DefiningPlaneOrigin
}
