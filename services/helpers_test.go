package services

import (
	"io"
	"math"

	"device-catalog/models"
	"device-catalog/utils"
)

func newTestLogger() *utils.Logger { return utils.NewLoggerTo(io.Discard, utils.LevelDebug) }

func phone(id int, brand, model, os string, price, ram float64) models.Device {
	return models.Device{
		ID: id, Brand: brand, Model: model, OS: os,
		Price: price, RAM: ram, Storage: 128, BatteryCapacity: 4500,
		ReleaseYear: 2023, ScreenSize: 6.5,
		CameraMP: math.NaN(), FrontCameraMP: math.NaN(), RefreshRate: 120,
		Weight: 190, Thickness: 8.1,
	}
}

func sampleDevices() []models.Device {
	return []models.Device{
		phone(1, "Apple", "iPhone 15", "iOS", 79900, 6),
		phone(2, "Samsung", "Galaxy S24", "Android", 64999, 8),
		phone(3, "Samsung", "Galaxy A15", "Android", 14999, 4),
		phone(4, "Google", "Pixel 8", "Android", 59999, 8),
		phone(5, "Xiaomi", "Redmi Note 13", "Android", 17999, 6),
		phone(6, "Apple", "iPhone SE", "iOS", 29999, 4),
	}
}
