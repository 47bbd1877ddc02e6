package panel

import (
	"fmt"
	"slices"

	"github.com/Carmen-Shannon/oxy-fx/common"
	"github.com/chewxy/math32"
)

// ControlKind identifies the value type of a Control.
type ControlKind int

const (
	KindBool ControlKind = iota
	KindFloat
	KindColor
	KindEnum
	KindAction
)

func (k ControlKind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindFloat:
		return "float"
	case KindColor:
		return "color"
	case KindEnum:
		return "enum"
	case KindAction:
		return "action"
	}
	return "unknown"
}

// Control is one named, typed entry of a Panel bound to live getter and setter functions.
type Control interface {
	// Name returns the control label, unique within its folder.
	Name() string

	// Kind returns the value type.
	Kind() ControlKind

	// Value reads the bound value. Colors are reported as "#rrggbb" strings and actions as nil.
	Value() any

	// Set writes v through the bound setter. Numbers are clamped to the control range, colors
	// accept "#rrggbb" strings or common.Color, and enum values must be one of the choices.
	//
	// Parameters:
	//   - v: the new value
	//
	// Returns:
	//   - error: common.ErrInputShape wrapped with the control name if v has the wrong type
	Set(v any) error
}

type boolControl struct {
	name string
	get  func() bool
	set  func(bool)
}

// Bool creates a checkbox control.
func Bool(name string, get func() bool, set func(bool)) Control {
	return &boolControl{name: name, get: get, set: set}
}

func (c *boolControl) Name() string      { return c.name }
func (c *boolControl) Kind() ControlKind { return KindBool }
func (c *boolControl) Value() any        { return c.get() }

func (c *boolControl) Set(v any) error {
	b, ok := v.(bool)
	if !ok {
		return shapeError(c.name, v)
	}
	c.set(b)
	return nil
}

// FloatControl is a slider over [Min, Max] snapped to Step.
type FloatControl struct {
	name string
	Min  float32
	Max  float32
	Step float32
	get  func() float32
	set  func(float32)
}

// Float creates a slider control. A zero step disables snapping.
//
// Parameters:
//   - name: the label
//   - min, max: the accepted range
//   - step: the snapping increment from min
//   - get: reads the bound value
//   - set: writes the bound value
//
// Returns:
//   - *FloatControl: the control
func Float(name string, min, max, step float32, get func() float32, set func(float32)) *FloatControl {
	if max < min {
		min, max = max, min
	}
	return &FloatControl{name: name, Min: min, Max: max, Step: step, get: get, set: set}
}

func (c *FloatControl) Name() string      { return c.name }
func (c *FloatControl) Kind() ControlKind { return KindFloat }
func (c *FloatControl) Value() any        { return c.get() }

func (c *FloatControl) Set(v any) error {
	f, ok := toFloat(v)
	if !ok {
		return shapeError(c.name, v)
	}
	c.set(c.clamp(f))
	return nil
}

// clamp snaps f to the step grid and bounds it to the range.
func (c *FloatControl) clamp(f float32) float32 {
	if c.Step > 0 {
		f = c.Min + math32.Round((f-c.Min)/c.Step)*c.Step
	}
	return math32.Max(c.Min, math32.Min(c.Max, f))
}

type colorControl struct {
	name string
	get  func() common.Color
	set  func(common.Color)
}

// Color creates a color picker control.
func Color(name string, get func() common.Color, set func(common.Color)) Control {
	return &colorControl{name: name, get: get, set: set}
}

func (c *colorControl) Name() string      { return c.name }
func (c *colorControl) Kind() ControlKind { return KindColor }
func (c *colorControl) Value() any        { return c.get().Hex() }

func (c *colorControl) Set(v any) error {
	switch val := v.(type) {
	case common.Color:
		c.set(val)
	case string:
		col, err := common.HexColor(val)
		if err != nil {
			return fmt.Errorf("control %q: %w", c.name, err)
		}
		c.set(col)
	default:
		return shapeError(c.name, v)
	}
	return nil
}

// EnumControl is a drop-down over a fixed list of choices.
type EnumControl struct {
	name    string
	Choices []string
	get     func() string
	set     func(string)
}

// Enum creates a drop-down control.
func Enum(name string, choices []string, get func() string, set func(string)) *EnumControl {
	return &EnumControl{name: name, Choices: slices.Clone(choices), get: get, set: set}
}

func (c *EnumControl) Name() string      { return c.name }
func (c *EnumControl) Kind() ControlKind { return KindEnum }
func (c *EnumControl) Value() any        { return c.get() }

func (c *EnumControl) Set(v any) error {
	s, ok := v.(string)
	if !ok || !slices.Contains(c.Choices, s) {
		return shapeError(c.name, v)
	}
	c.set(s)
	return nil
}

// ActionControl is a button.
type ActionControl struct {
	name string
	fn   func()
}

// Action creates a button control.
func Action(name string, fn func()) *ActionControl {
	return &ActionControl{name: name, fn: fn}
}

func (c *ActionControl) Name() string      { return c.name }
func (c *ActionControl) Kind() ControlKind { return KindAction }
func (c *ActionControl) Value() any        { return nil }

// Set triggers the action; the value is ignored.
func (c *ActionControl) Set(any) error {
	c.Trigger()
	return nil
}

// Trigger runs the action.
func (c *ActionControl) Trigger() {
	if c.fn != nil {
		c.fn()
	}
}

func toFloat(v any) (float32, bool) {
	switch n := v.(type) {
	case float32:
		return n, true
	case float64:
		return float32(n), true
	case int:
		return float32(n), true
	case int64:
		return float32(n), true
	}
	return 0, false
}

func shapeError(name string, v any) error {
	return fmt.Errorf("control %q: value %v (%T): %w", name, v, v, common.ErrInputShape)
}
