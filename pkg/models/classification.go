package models

// Classification is the image classifier's verdict for one upload.
type Classification struct {
	Clase     string  `json:"clase"`
	Confianza float64 `json:"confianza"`
}
