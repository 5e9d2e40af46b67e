package param

import (
	"image"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Shape is a structuring element shape.
type Shape string

const (
	ShapeRect    Shape = "rect"
	ShapeCross   Shape = "cross"
	ShapeEllipse Shape = "ellipse"
)

// Array holds a 2-D numeric matrix, such as a convolution kernel, and an
// optional anchor inside it. A 1-D array is stored as a single row.
type Array struct {
	common
	dims          int
	value         *mat.Dense
	anchor        image.Point
	anchorEnabled bool
	structElement bool
	shape         Shape
}

// NewArray creates an array. The default, if given, must be a *mat.Dense.
// Otherwise the array is filled with ones, 3x3 or 1x3 for one dimension.
// The anchor starts at (-1, -1), the centre.
func NewArray(opts ...Option) (*Array, error) {
	o := newOptions(opts)
	if o.dims != 1 && o.dims != 2 {
		return nil, errors.Wrapf(ErrInvalidDefault, "dims must be 1 or 2, got %d", o.dims)
	}
	a := &Array{
		common:        newCommon(o),
		dims:          o.dims,
		anchor:        image.Pt(-1, -1),
		anchorEnabled: !o.noAnchor,
		structElement: o.structElement,
	}

	if !o.hasDefault {
		rows := 3
		if a.dims == 1 {
			rows = 1
		}
		a.value = ones(rows, 3)
		return a, nil
	}

	def, ok := o.def.(*mat.Dense)
	if !ok || def == nil {
		return nil, errors.Wrapf(ErrInvalidDefault, "default must be a *mat.Dense, got %T", o.def)
	}
	if a.dims == 1 {
		if r, _ := def.Dims(); r != 1 {
			return nil, errors.Wrapf(ErrInvalidDefault, "a 1-D array must have a single row, got %d", r)
		}
	}
	a.value = mat.DenseCopyOf(def)

	return a, nil
}

func ones(rows, cols int) *mat.Dense {
	data := make([]float64, rows*cols)
	for i := range data {
		data[i] = 1
	}
	return mat.NewDense(rows, cols, data)
}

func (a *Array) Kind() Kind { return KindArray }

// Dims returns 1 or 2.
func (a *Array) Dims() int { return a.dims }

// Value returns a copy of the matrix.
func (a *Array) Value() *mat.Dense { return mat.DenseCopyOf(a.value) }

func (a *Array) Any() any { return a.Value() }

// Editable reports whether cells can be edited, which is not the case when
// the values come from a structuring element.
func (a *Array) Editable() bool { return !a.readOnly && !a.structElement }

func (a *Array) UseStructElement() bool { return a.structElement }

func (a *Array) AnchorEnabled() bool { return a.anchorEnabled }

// Anchor returns the anchor as (column, row). (-1, -1) is the centre.
func (a *Array) Anchor() image.Point { return a.anchor }

func (a *Array) Set(m *mat.Dense) error {
	if m == nil || m.IsEmpty() {
		return storeAndTrigger(&a.common, &a.value, nil, true)
	}
	if r, _ := m.Dims(); a.dims == 1 && r != 1 {
		return errors.Wrapf(ErrOutOfRange, "a 1-D array must have a single row, got %d", r)
	}
	if err := a.checkAnchor(a.anchor, m); err != nil {
		a.anchor = image.Pt(-1, -1)
	}
	return storeAndTrigger(&a.common, &a.value, mat.DenseCopyOf(m), false)
}

// SetAnchor moves the anchor. Both coordinates must be inside the matrix, or -1.
func (a *Array) SetAnchor(p image.Point) error {
	if !a.anchorEnabled {
		return ErrAnchorDisabled
	}
	if err := a.checkAnchor(p, a.value); err != nil {
		return err
	}
	return storeAndTrigger(&a.common, &a.anchor, p, false)
}

func (a *Array) checkAnchor(p image.Point, m *mat.Dense) error {
	rows, cols := m.Dims()
	if p.X < -1 || p.X >= cols || p.Y < -1 || p.Y >= rows {
		return errors.Wrapf(ErrOutOfRange, "anchor %v outside %dx%d", p, rows, cols)
	}
	return nil
}

// Shape returns the structuring element in use, empty when the cells are free.
func (a *Array) Shape() Shape { return a.shape }

// SetShape fills the matrix with a structuring element of the current size.
func (a *Array) SetShape(shape Shape) error {
	if !a.structElement {
		return errors.Wrap(ErrReadOnly, "structuring element is disabled")
	}
	rows, cols := a.value.Dims()
	m, err := structElement(shape, rows, cols)
	if err != nil {
		return err
	}
	a.shape = shape
	return storeAndTrigger(&a.common, &a.value, m, false)
}

func structElement(shape Shape, rows, cols int) (*mat.Dense, error) {
	m := mat.NewDense(rows, cols, nil)
	cy, cx := rows/2, cols/2
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			var in bool
			switch shape {
			case ShapeRect:
				in = true
			case ShapeCross:
				in = r == cy || c == cx
			case ShapeEllipse:
				dy := float64(r-cy) / max(float64(rows)/2, 1)
				dx := float64(c-cx) / max(float64(cols)/2, 1)
				in = dx*dx+dy*dy <= 1
			default:
				return nil, errors.Wrapf(ErrUnknownOption, "shape %q", shape)
			}
			if in {
				m.Set(r, c, 1)
			}
		}
	}
	return m, nil
}

// SetText parses rows separated by ";" and cells separated by ",", for
// example "0,-1,0;-1,5,-1;0,-1,0".
func (a *Array) SetText(s string) error {
	rows := strings.Split(strings.TrimSpace(s), ";")
	var (
		data []float64
		cols int
	)
	for i, row := range rows {
		cells := strings.Split(row, ",")
		if i == 0 {
			cols = len(cells)
		} else if len(cells) != cols {
			return errors.Wrapf(ErrInvalidText, "row %d has %d cells, want %d", i, len(cells), cols)
		}
		for _, cell := range cells {
			v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				return errors.Wrapf(ErrInvalidText, "%q is not a number", cell)
			}
			data = append(data, v)
		}
	}
	return a.Set(mat.NewDense(len(rows), cols, data))
}

func (a *Array) String() string {
	rows, cols := a.value.Dims()
	var sb strings.Builder
	for r := 0; r < rows; r++ {
		if r > 0 {
			sb.WriteByte(';')
		}
		for c := 0; c < cols; c++ {
			if c > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(strconv.FormatFloat(a.value.At(r, c), 'g', -1, 64))
		}
	}
	return sb.String()
}

var _ Param = (*Array)(nil)
