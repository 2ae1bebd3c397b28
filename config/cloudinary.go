package config

import (
	"log"
	"os"

	"github.com/cloudinary/cloudinary-go/v2"
)

var Cloudinary *cloudinary.Cloudinary

// ConnectCloudinary is optional: without CLOUDINARY_URL avatar uploads are
// disabled and the handler reports the upstream as unavailable.
func ConnectCloudinary() {
	url := os.Getenv("CLOUDINARY_URL")
	if url == "" {
		log.Println("CLOUDINARY_URL not set, avatar upload disabled")
		return
	}

	cld, err := cloudinary.NewFromURL(url)
	if err != nil {
		panic("Failed to connect to Cloudinary: " + err.Error())
	}

	Cloudinary = cld
}
