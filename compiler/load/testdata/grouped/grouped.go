//buildergen:builder
package grouped

//buildergen:builder
import "fmt"

//buildergen:builder
type (
	Width struct {
		px int
	}
	Height struct {
		px int
	}
	Label string
)

//buildergen:builder
var (
	MinWidth = Width{px: 1}
	MaxWidth = Width{px: 4096}
)

const (
	// Unit is documented on its own.
	//
	//buildergen:builder
	Unit  = "px"
	Scale = 2
)

func (l Label) String() string { return fmt.Sprint(string(l)) }
