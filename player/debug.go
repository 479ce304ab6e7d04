package player

import (
	"fmt"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/oomph-ac/leapvox/utils"
)

// Debugger selects which activity of a player is logged at debug level.
type Debugger struct {
	LogHighlight bool
	LogInput     bool
	LogFrames    bool
}

// TryDebug logs msg with the params passed if log is true.
func (p *Player) TryDebug(msg string, params *orderedmap.OrderedMap[string, any], log bool) {
	if !log {
		return
	}
	if params == nil || params.Len() == 0 {
		p.log.Debug(msg)
		return
	}
	p.log.Debugf("%s %s", msg, utils.PrettyParams(params))
}

// debugParams builds ordered params from alternating keys and values.
func debugParams(kv ...any) *orderedmap.OrderedMap[string, any] {
	if len(kv)%2 != 0 {
		panic(fmt.Errorf("debugParams: odd number of arguments %d", len(kv)))
	}
	params := orderedmap.NewOrderedMap[string, any]()
	for i := 0; i < len(kv); i += 2 {
		params.Set(kv[i].(string), kv[i+1])
	}
	return params
}
