package model

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Mesh is CPU-side indexed triangle geometry ready for GPU upload.
type Mesh struct {
	// Vertices holds the unique vertices referenced by Indices.
	Vertices []GPUVertex

	// Indices lists three vertex indices per counter-clockwise triangle.
	Indices []uint32
}

// VertexData serializes every vertex into one contiguous buffer.
//
// Returns:
//   - []byte: the vertex buffer contents
func (m Mesh) VertexData() []byte {
	buf := make([]byte, 0, len(m.Vertices)*GPUVertexSize)
	for i := range m.Vertices {
		buf = append(buf, m.Vertices[i].Marshal()...)
	}
	return buf
}

// IndexData serializes the index list as little-endian uint32 values.
//
// Returns:
//   - []byte: the index buffer contents
func (m Mesh) IndexData() []byte {
	buf := make([]byte, len(m.Indices)*4)
	for i, idx := range m.Indices {
		putUint32(buf[i*4:], idx)
	}
	return buf
}

// BoundingRadius returns the largest vertex distance from the origin.
//
// Returns:
//   - float32: the bounding sphere radius
func (m Mesh) BoundingRadius() float32 {
	var maxLen float32
	for _, v := range m.Vertices {
		if l := mgl32.Vec3(v.Position).Len(); l > maxLen {
			maxLen = l
		}
	}
	return maxLen
}

var icosahedronCorners = func() []mgl32.Vec3 {
	t := float32((1 + math.Sqrt(5)) / 2)
	return []mgl32.Vec3{
		{-1, t, 0}, {1, t, 0}, {-1, -t, 0}, {1, -t, 0},
		{0, -1, t}, {0, 1, t}, {0, -1, -t}, {0, 1, -t},
		{t, 0, -1}, {t, 0, 1}, {-t, 0, -1}, {-t, 0, 1},
	}
}()

var icosahedronFaces = [20][3]int{
	{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
	{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
	{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
	{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
}

// NewIcosphere builds a sphere by subdividing each icosahedron face into (detail+1)^2
// triangles and projecting every vertex onto the sphere of the given radius.
//
// Normals are the normalized positions. UVs are equirectangular
// (u = atan2(z, -x)/2pi + 0.5, v = atan2(-y, sqrt(x^2+z^2))/pi + 0.5) with triangles that
// straddle the u seam shifted so no triangle interpolates across it, and pole vertices
// taking the azimuth of their triangle's centroid.
//
// Parameters:
//   - radius: the sphere radius, must be positive
//   - detail: the subdivision level, must be non-negative
//
// Returns:
//   - Mesh: the indexed sphere mesh
func NewIcosphere(radius float32, detail int) Mesh {
	if radius <= 0 {
		panic("model: icosphere radius must be positive")
	}
	if detail < 0 {
		panic("model: icosphere detail must be non-negative")
	}

	cols := detail + 1
	triangles := make([][3]mgl32.Vec3, 0, 20*cols*cols)
	for _, f := range icosahedronFaces {
		triangles = subdivideFace(triangles, icosahedronCorners[f[0]], icosahedronCorners[f[1]], icosahedronCorners[f[2]], cols)
	}

	type vertexKey struct {
		pos [3]float32
		uv  [2]float32
	}
	mesh := Mesh{Indices: make([]uint32, 0, len(triangles)*3)}
	lookup := make(map[vertexKey]uint32, len(triangles))

	for _, tri := range triangles {
		var pos [3]mgl32.Vec3
		var uvs [3]mgl32.Vec2
		for i, p := range tri {
			pos[i] = p.Normalize().Mul(radius)
			uvs[i] = sphereUV(pos[i])
		}
		correctPoles(&uvs, pos)
		correctSeam(&uvs)

		for i := range pos {
			key := vertexKey{pos: pos[i], uv: uvs[i]}
			idx, ok := lookup[key]
			if !ok {
				idx = uint32(len(mesh.Vertices))
				lookup[key] = idx
				mesh.Vertices = append(mesh.Vertices, GPUVertex{
					Position: pos[i],
					Normal:   pos[i].Normalize(),
					TexCoord: uvs[i],
				})
			}
			mesh.Indices = append(mesh.Indices, idx)
		}
	}
	return mesh
}

// subdivideFace appends the (cols)^2 triangles of face (a, b, c) to out, keeping its winding.
func subdivideFace(out [][3]mgl32.Vec3, a, b, c mgl32.Vec3, cols int) [][3]mgl32.Vec3 {
	grid := make([][]mgl32.Vec3, cols+1)
	for i := 0; i <= cols; i++ {
		t := float32(i) / float32(cols)
		aj := lerp(a, c, t)
		bj := lerp(b, c, t)
		rows := cols - i
		grid[i] = make([]mgl32.Vec3, rows+1)
		for j := 0; j <= rows; j++ {
			if j == 0 && i == cols {
				grid[i][j] = aj
			} else {
				grid[i][j] = lerp(aj, bj, float32(j)/float32(rows))
			}
		}
	}

	for i := 0; i < cols; i++ {
		for j := 0; j < 2*(cols-i)-1; j++ {
			k := j / 2
			if j%2 == 0 {
				out = append(out, [3]mgl32.Vec3{grid[i][k+1], grid[i+1][k], grid[i][k]})
			} else {
				out = append(out, [3]mgl32.Vec3{grid[i][k+1], grid[i+1][k+1], grid[i+1][k]})
			}
		}
	}
	return out
}

func lerp(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

func azimuth(v mgl32.Vec3) float64 {
	return math.Atan2(float64(v.Z()), float64(-v.X()))
}

func inclination(v mgl32.Vec3) float64 {
	return math.Atan2(float64(-v.Y()), math.Hypot(float64(v.X()), float64(v.Z())))
}

func sphereUV(v mgl32.Vec3) mgl32.Vec2 {
	return mgl32.Vec2{
		float32(azimuth(v)/2/math.Pi + 0.5),
		float32(inclination(v)/math.Pi + 0.5),
	}
}

// correctPoles gives pole vertices the azimuth of the triangle centroid and wraps u=1
// back to 0 on the negative-azimuth half.
func correctPoles(uvs *[3]mgl32.Vec2, pos [3]mgl32.Vec3) {
	centroid := pos[0].Add(pos[1]).Add(pos[2]).Mul(1.0 / 3)
	az := azimuth(centroid)
	for i := range uvs {
		if az < 0 && uvs[i][0] == 1 {
			uvs[i][0]--
		}
		if pos[i].X() == 0 && pos[i].Z() == 0 {
			uvs[i][0] = float32(az/2/math.Pi + 0.5)
		}
	}
}

// correctSeam shifts the low-u vertices of a triangle that spans the u seam by one full turn.
func correctSeam(uvs *[3]mgl32.Vec2) {
	hi := max(uvs[0][0], uvs[1][0], uvs[2][0])
	lo := min(uvs[0][0], uvs[1][0], uvs[2][0])
	if hi > 0.9 && lo < 0.1 {
		for i := range uvs {
			if uvs[i][0] < 0.2 {
				uvs[i][0]++
			}
		}
	}
}
