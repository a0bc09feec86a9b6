// Package loaders reads triangle meshes from PLY files.
package loaders

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/df07/go-octree-raytracer/pkg/core"
	"github.com/df07/go-octree-raytracer/pkg/geometry"
	"github.com/df07/go-octree-raytracer/pkg/log"
)

var logger = log.New("loaders")

const (
	// maxElementCount bounds header counts; PLY indices are at most 32 bits
	maxElementCount = math.MaxInt32
	// maxPrealloc caps slice capacity taken on trust from the header
	maxPrealloc = 1 << 20
)

var (
	ErrNotPLY         = errors.New("loaders: missing ply magic")
	ErrUnsupportedPLY = errors.New("loaders: unsupported ply file")
	ErrInvalidPLY     = errors.New("loaders: invalid ply data")
)

// PLYHeader represents the parsed header information from a PLY file
type PLYHeader struct {
	Format   string // "ascii", "binary_little_endian" or "binary_big_endian"
	Version  string
	Elements []PLYElement
}

// PLYElement is one "element" block of the header, in file order
type PLYElement struct {
	Name       string
	Count      int
	Properties []PLYProperty
}

// PLYProperty represents a property definition in the PLY header
type PLYProperty struct {
	Name     string
	Type     string
	IsList   bool
	ListType string // For list properties, the type of the count
}

// PLYData holds the triangle data loaded from a PLY file
type PLYData struct {
	Vertices  []core.Vec3
	Faces     []int       // Triangle indices, 3 per triangle; polygons are fan-triangulated
	Normals   []core.Vec3 // Per-vertex, empty if not present
	TexCoords []core.Vec2 // Per-vertex, empty if not present
}

// Mesh builds an indexed mesh from the loaded data
func (d *PLYData) Mesh() *geometry.Mesh {
	options := &geometry.MeshOptions{Normals: d.Normals, TexCoords: d.TexCoords}
	return geometry.NewMesh(d.Vertices, d.Faces, options)
}

// LoadPLY loads a PLY file from disk
func LoadPLY(filename string) (*PLYData, error) {
	startTime := time.Now()

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open PLY file: %w", err)
	}
	defer file.Close()

	data, err := ReadPLY(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}

	logger.Infof("loaded %s: %d vertices, %d triangles in %s",
		filename, len(data.Vertices), len(data.Faces)/3, time.Since(startTime))
	return data, nil
}

// ReadPLY parses a PLY stream in any of the three standard encodings
func ReadPLY(r io.Reader) (*PLYData, error) {
	reader := bufio.NewReader(r)

	header, err := parsePLYHeader(reader)
	if err != nil {
		return nil, err
	}

	var values valueReader
	switch header.Format {
	case "ascii":
		values = newASCIIReader(reader)
	case "binary_little_endian":
		values = &binaryReader{reader: reader, order: binary.LittleEndian}
	case "binary_big_endian":
		values = &binaryReader{reader: reader, order: binary.BigEndian}
	default:
		return nil, fmt.Errorf("%w: format %q", ErrUnsupportedPLY, header.Format)
	}

	data := &PLYData{}
	for _, element := range header.Elements {
		switch element.Name {
		case "vertex":
			err = readVertices(values, element, data)
		case "face":
			err = readFaces(values, element, data)
		default:
			err = skipElement(values, element)
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", element.Name, err)
		}
	}

	if err := data.validate(); err != nil {
		return nil, err
	}
	return data, nil
}

// parsePLYHeader reads up to and including end_header, leaving reader at the body
func parsePLYHeader(reader *bufio.Reader) (*PLYHeader, error) {
	header := &PLYHeader{}

	line, err := reader.ReadString('\n')
	if err != nil || strings.TrimSpace(line) != "ply" {
		return nil, ErrNotPLY
	}

	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			return nil, fmt.Errorf("%w: header ends without end_header", ErrInvalidPLY)
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "end_header":
			if header.Format == "" {
				return nil, fmt.Errorf("%w: missing format line", ErrInvalidPLY)
			}
			return header, nil
		case "format":
			if len(parts) < 3 {
				return nil, fmt.Errorf("%w: bad format line %q", ErrInvalidPLY, strings.TrimSpace(line))
			}
			header.Format = parts[1]
			header.Version = parts[2]
		case "comment", "obj_info":
		case "element":
			if len(parts) < 3 {
				return nil, fmt.Errorf("%w: bad element line %q", ErrInvalidPLY, strings.TrimSpace(line))
			}
			count, err := strconv.Atoi(parts[2])
			if err != nil || count < 0 || count > maxElementCount {
				return nil, fmt.Errorf("%w: invalid element count %q", ErrInvalidPLY, parts[2])
			}
			header.Elements = append(header.Elements, PLYElement{Name: parts[1], Count: count})
		case "property":
			if len(header.Elements) == 0 {
				return nil, fmt.Errorf("%w: property before any element", ErrInvalidPLY)
			}
			prop, err := parsePLYProperty(parts[1:])
			if err != nil {
				return nil, err
			}
			current := &header.Elements[len(header.Elements)-1]
			current.Properties = append(current.Properties, prop)
		default:
			return nil, fmt.Errorf("%w: unknown header keyword %q", ErrInvalidPLY, parts[0])
		}
	}
}

// parsePLYProperty parses a property line from the PLY header
func parsePLYProperty(parts []string) (PLYProperty, error) {
	if len(parts) >= 1 && parts[0] == "list" {
		if len(parts) < 4 {
			return PLYProperty{}, fmt.Errorf("%w: invalid list property definition", ErrInvalidPLY)
		}
		if getTypeSize(parts[1]) == 0 || getTypeSize(parts[2]) == 0 {
			return PLYProperty{}, fmt.Errorf("%w: unknown list type in %v", ErrInvalidPLY, parts)
		}
		return PLYProperty{IsList: true, ListType: parts[1], Type: parts[2], Name: parts[3]}, nil
	}

	if len(parts) < 2 {
		return PLYProperty{}, fmt.Errorf("%w: invalid property definition", ErrInvalidPLY)
	}
	if getTypeSize(parts[0]) == 0 {
		return PLYProperty{}, fmt.Errorf("%w: unknown property type %q", ErrInvalidPLY, parts[0])
	}
	return PLYProperty{Type: parts[0], Name: parts[1]}, nil
}

// getTypeSize returns the byte size of a PLY scalar type, 0 when unknown
func getTypeSize(dataType string) int {
	switch dataType {
	case "char", "uchar", "int8", "uint8":
		return 1
	case "short", "ushort", "int16", "uint16":
		return 2
	case "int", "uint", "float", "int32", "uint32", "float32":
		return 4
	case "double", "float64":
		return 8
	}
	return 0
}

// vertexLayout maps the attributes the tracer uses to property positions
type vertexLayout struct {
	position [3]int
	normal   [3]int
	texCoord [2]int
}

func newVertexLayout(props []PLYProperty) (vertexLayout, error) {
	layout := vertexLayout{
		position: [3]int{-1, -1, -1},
		normal:   [3]int{-1, -1, -1},
		texCoord: [2]int{-1, -1},
	}
	for i, prop := range props {
		if prop.IsList {
			continue
		}
		switch prop.Name {
		case "x":
			layout.position[0] = i
		case "y":
			layout.position[1] = i
		case "z":
			layout.position[2] = i
		case "nx":
			layout.normal[0] = i
		case "ny":
			layout.normal[1] = i
		case "nz":
			layout.normal[2] = i
		case "u", "s", "texture_u":
			layout.texCoord[0] = i
		case "v", "t", "texture_v":
			layout.texCoord[1] = i
		}
	}
	for _, index := range layout.position {
		if index < 0 {
			return layout, fmt.Errorf("%w: vertex element lacks x, y or z", ErrInvalidPLY)
		}
	}
	return layout, nil
}

func (l vertexLayout) hasNormals() bool {
	return l.normal[0] >= 0 && l.normal[1] >= 0 && l.normal[2] >= 0
}

func (l vertexLayout) hasTexCoords() bool {
	return l.texCoord[0] >= 0 && l.texCoord[1] >= 0
}

func readVertices(values valueReader, element PLYElement, data *PLYData) error {
	layout, err := newVertexLayout(element.Properties)
	if err != nil {
		return err
	}

	capacity := min(element.Count, maxPrealloc)
	data.Vertices = make([]core.Vec3, 0, capacity)
	if layout.hasNormals() {
		data.Normals = make([]core.Vec3, 0, capacity)
	}
	if layout.hasTexCoords() {
		data.TexCoords = make([]core.Vec2, 0, capacity)
	}

	row := make([]float64, len(element.Properties))
	for i := 0; i < element.Count; i++ {
		for p, prop := range element.Properties {
			if prop.IsList {
				if err := skipList(values, prop); err != nil {
					return err
				}
				continue
			}
			if row[p], err = values.scalar(prop.Type); err != nil {
				return err
			}
		}

		data.Vertices = append(data.Vertices, core.NewVec3(row[layout.position[0]], row[layout.position[1]], row[layout.position[2]]))
		if layout.hasNormals() {
			data.Normals = append(data.Normals, core.NewVec3(row[layout.normal[0]], row[layout.normal[1]], row[layout.normal[2]]))
		}
		if layout.hasTexCoords() {
			data.TexCoords = append(data.TexCoords, core.NewVec2(row[layout.texCoord[0]], row[layout.texCoord[1]]))
		}
	}
	return nil
}

func readFaces(values valueReader, element PLYElement, data *PLYData) error {
	data.Faces = make([]int, 0, min(element.Count, maxPrealloc)*3)

	for i := 0; i < element.Count; i++ {
		found := false
		for _, prop := range element.Properties {
			isIndexList := prop.IsList && (prop.Name == "vertex_indices" || prop.Name == "vertex_index")
			if !isIndexList || found {
				if err := skipProperty(values, prop); err != nil {
					return err
				}
				continue
			}
			found = true

			polygon, err := readList(values, prop)
			if err != nil {
				return err
			}
			if len(polygon) < 3 {
				return fmt.Errorf("%w: face %d has %d vertices", ErrInvalidPLY, i, len(polygon))
			}
			for k := 1; k+1 < len(polygon); k++ {
				data.Faces = append(data.Faces, polygon[0], polygon[k], polygon[k+1])
			}
		}
		if !found {
			return fmt.Errorf("%w: face element lacks vertex_indices", ErrInvalidPLY)
		}
	}
	return nil
}

func skipElement(values valueReader, element PLYElement) error {
	for i := 0; i < element.Count; i++ {
		for _, prop := range element.Properties {
			if err := skipProperty(values, prop); err != nil {
				return err
			}
		}
	}
	return nil
}

func skipProperty(values valueReader, prop PLYProperty) error {
	if prop.IsList {
		return skipList(values, prop)
	}
	_, err := values.scalar(prop.Type)
	return err
}

func skipList(values valueReader, prop PLYProperty) error {
	_, err := readList(values, prop)
	return err
}

func readList(values valueReader, prop PLYProperty) ([]int, error) {
	count, err := values.scalar(prop.ListType)
	if err != nil {
		return nil, err
	}
	if count < 0 || count != math.Trunc(count) {
		return nil, fmt.Errorf("%w: list length %v", ErrInvalidPLY, count)
	}

	items := make([]int, int(count))
	for i := range items {
		value, err := values.scalar(prop.Type)
		if err != nil {
			return nil, err
		}
		items[i] = int(value)
	}
	return items, nil
}

// validate checks indices and attribute counts so Mesh cannot panic
func (d *PLYData) validate() error {
	if len(d.Faces) == 0 {
		return fmt.Errorf("%w: no faces", ErrInvalidPLY)
	}
	for _, index := range d.Faces {
		if index < 0 || index >= len(d.Vertices) {
			return fmt.Errorf("%w: vertex index %d out of range [0,%d)", ErrInvalidPLY, index, len(d.Vertices))
		}
	}
	return nil
}

// valueReader decodes one scalar of the given PLY type from the body
type valueReader interface {
	scalar(dataType string) (float64, error)
}

type asciiReader struct {
	scanner *bufio.Scanner
}

func newASCIIReader(r io.Reader) *asciiReader {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)
	return &asciiReader{scanner: scanner}
}

func (a *asciiReader) scalar(string) (float64, error) {
	if !a.scanner.Scan() {
		if err := a.scanner.Err(); err != nil {
			return 0, err
		}
		return 0, fmt.Errorf("%w: unexpected end of data", ErrInvalidPLY)
	}
	value, err := strconv.ParseFloat(a.scanner.Text(), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidPLY, err)
	}
	return value, nil
}

type binaryReader struct {
	reader io.Reader
	order  binary.ByteOrder
	buf    [8]byte
}

func (b *binaryReader) scalar(dataType string) (float64, error) {
	size := getTypeSize(dataType)
	if size == 0 {
		return 0, fmt.Errorf("%w: unknown type %q", ErrInvalidPLY, dataType)
	}
	raw := b.buf[:size]
	if _, err := io.ReadFull(b.reader, raw); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidPLY, err)
	}

	switch dataType {
	case "char", "int8":
		return float64(int8(raw[0])), nil
	case "uchar", "uint8":
		return float64(raw[0]), nil
	case "short", "int16":
		return float64(int16(b.order.Uint16(raw))), nil
	case "ushort", "uint16":
		return float64(b.order.Uint16(raw)), nil
	case "int", "int32":
		return float64(int32(b.order.Uint32(raw))), nil
	case "uint", "uint32":
		return float64(b.order.Uint32(raw)), nil
	case "float", "float32":
		return float64(math.Float32frombits(b.order.Uint32(raw))), nil
	default:
		return math.Float64frombits(b.order.Uint64(raw)), nil
	}
}
