package stats

// Role marks a column that feeds a derived series instead of being plotted
// on its own.
type Role int

const (
	// RoleNone is an ordinary initiator column.
	RoleNone Role = iota
	// RoleEMIF1Sys is the first EMIF system port, summed into TOTAL.
	RoleEMIF1Sys
	// RoleEMIF2Sys is the second EMIF system port, summed into TOTAL.
	RoleEMIF2Sys
)

// TotalLabel names the derived EMIF1_SYS + EMIF2_SYS series.
const TotalLabel = "TOTAL"

// specialLabels maps collector labels to their role. The match is exact:
// the collector writes "NAME = value", so the label keeps the trailing space.
var specialLabels = map[string]Role{
	"STATCOL_EMIF1_SYS ": RoleEMIF1Sys,
	"STATCOL_EMIF2_SYS ": RoleEMIF2Sys,
}

// RoleOf returns the role for a column label.
func RoleOf(label string) Role {
	return specialLabels[label]
}

func (r Role) String() string {
	switch r {
	case RoleEMIF1Sys:
		return "emif1-sys"
	case RoleEMIF2Sys:
		return "emif2-sys"
	default:
		return "none"
	}
}
