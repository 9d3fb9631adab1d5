package gallery

import "time"

// SampleItems is the built-in demo collection shown when no manifest is
// given. The images are remote and render as placeholders.
func SampleItems() []Item {
	return []Item{
		{
			ID:        "1",
			Type:      MediaImage,
			URL:       "https://images.unsplash.com/photo-1570298995084-9c18ffa7b2c3?w=800&q=80",
			Thumbnail: "https://images.unsplash.com/photo-1570298995084-9c18ffa7b2c3?w=300&h=200&fit=crop&q=80",
			Title:     "Solar panel inspection 01",
			Width:     800,
			Height:    600,
			Metadata: &Metadata{
				CaptureDate: time.Date(2023, 6, 15, 10, 30, 0, 0, time.UTC),
				Location:    Location{Name: "Tokyo plant, area A", Lat: 35.6895, Lng: 139.6917},
				Resolution:  "3840x2160",
				DroneModel:  "DJI Mavic 3",
				Tags: []Tag{
					{ID: "solar", Label: "Solar panel", Color: "#ff9800"},
					{ID: "anomaly", Label: "Anomaly", Color: "#f44336"},
					{ID: "repair", Label: "Needs repair", Color: "#d32f2f"},
				},
				Status: StatusRepairNeeded,
			},
		},
		{
			ID:        "2",
			Type:      MediaImage,
			URL:       "https://images.unsplash.com/photo-1535713875002-d1d0cf377fde?w=800&q=80",
			Thumbnail: "https://images.unsplash.com/photo-1535713875002-d1d0cf377fde?w=300&h=200&fit=crop&q=80",
			Title:     "Bridge inspection 05",
			Width:     800,
			Height:    600,
			Metadata: &Metadata{
				CaptureDate: time.Date(2023, 6, 18, 14, 22, 0, 0, time.UTC),
				Location:    Location{Name: "River bridge", Lat: 35.6581, Lng: 139.7514},
				Resolution:  "4000x3000",
				DroneModel:  "DJI Air 2S",
				Tags: []Tag{
					{ID: "concrete", Label: "Concrete", Color: "#607d8b"},
					{ID: "crack", Label: "Crack", Color: "#ff5722"},
					{ID: "aging", Label: "Aging", Color: "#795548"},
				},
				Status: StatusAttention,
			},
		},
		{
			ID:        "3",
			Type:      MediaImage,
			URL:       "https://images.unsplash.com/photo-1568602471122-7832951cc4c5?w=800&q=80",
			Thumbnail: "https://images.unsplash.com/photo-1568602471122-7832951cc4c5?w=300&h=200&fit=crop&q=80",
			Title:     "Pylon inspection 12",
			Width:     800,
			Height:    600,
			Metadata: &Metadata{
				CaptureDate: time.Date(2023, 6, 22, 11, 45, 0, 0, time.UTC),
				Location:    Location{Name: "Transmission line", Lat: 35.6812, Lng: 139.7671},
				Resolution:  "6000x4000",
				DroneModel:  "DJI Phantom 4 Pro",
				Tags: []Tag{
					{ID: "tower", Label: "Tower", Color: "#424242"},
					{ID: "corrosion", Label: "Corrosion", Color: "#8d6e63"},
					{ID: "paint", Label: "Paint peeling", Color: "#ffc107"},
				},
				Status: StatusRepaired,
			},
		},
	}
}
