package scene

// RGB is an 8-bit per channel colour.
type RGB struct {
	R, G, B uint8
}

// Mul scales every channel by k/255.
func (c RGB) Mul(k uint8) RGB {
	return RGB{
		R: uint8((uint16(c.R) * uint16(k)) / 255),
		G: uint8((uint16(c.G) * uint16(k)) / 255),
		B: uint8((uint16(c.B) * uint16(k)) / 255),
	}
}

// RGBA returns normalized channels with alpha a.
func (c RGB) RGBA(a float32) [4]float32 {
	return [4]float32{float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255, a}
}

var Palette = struct {
	Ground    RGB
	Outskirts RGB
	Ward      RGB
	Plaza     RGB
	Wall      RGB
	Gate      RGB
	Street    RGB
	Road      RGB
	Artery    RGB
	Fountain  RGB
	Church    RGB
	House     RGB
}{
	Ground:    RGB{R: 38, G: 44, B: 36},
	Outskirts: RGB{R: 92, G: 104, B: 84},
	Ward:      RGB{R: 176, G: 150, B: 112},
	Plaza:     RGB{R: 226, G: 204, B: 150},
	Wall:      RGB{R: 210, G: 206, B: 196},
	Gate:      RGB{R: 240, G: 120, B: 60},
	Street:    RGB{R: 120, G: 96, B: 70},
	Road:      RGB{R: 150, G: 130, B: 96},
	Artery:    RGB{R: 250, G: 236, B: 200},
	Fountain:  RGB{R: 90, G: 160, B: 230},
	Church:    RGB{R: 230, G: 70, B: 80},
	House:     RGB{R: 200, G: 170, B: 120},
}
