package material

import "fmt"

// Role is how a fragment shader samples a texture.
type Role int

const (
	Diffuse Role = iota
	Specular
	Normal
)

// SamplerName returns the sampler prefix for the role. Bind appends a
// 1-based index counted per role, so the second diffuse texture binds to
// texture_diffuse2.
func (r Role) SamplerName() string {
	switch r {
	case Diffuse:
		return "texture_diffuse"
	case Specular:
		return "texture_specular"
	case Normal:
		return "texture_normal"
	default:
		return fmt.Sprintf("texture_role%d_", int(r))
	}
}

func (r Role) String() string {
	switch r {
	case Diffuse:
		return "diffuse"
	case Specular:
		return "specular"
	case Normal:
		return "normal"
	default:
		return fmt.Sprintf("Role(%d)", int(r))
	}
}

// DynamicPath is the Path of textures created by UpdateTextureRGB8.
const DynamicPath = "<dynamic>"

// Texture is a GPU texture referenced by a material. Textures created by
// the material itself are deleted with it; all others belong to whoever
// uploaded them.
type Texture struct {
	ID   uint32
	Role Role
	Path string

	owned bool
}

// Owned reports whether the material deletes the texture on its last release.
func (t Texture) Owned() bool {
	return t.owned
}
