package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
)

// GeolocationHandler answers approximate-location lookups from the caller's
// IP, the coarse fallback the client may invoke after repeated GPS failure.
type GeolocationHandler struct {
	client  *http.Client
	baseURL string
}

func NewGeolocationHandler() *GeolocationHandler {
	return &GeolocationHandler{
		client:  &http.Client{Timeout: 5 * time.Second},
		baseURL: "http://ip-api.com/json",
	}
}

type ipAPIResponse struct {
	Status  string  `json:"status"`
	City    string  `json:"city"`
	Region  string  `json:"regionName"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// Lookup proxies the IP geolocation provider. Coordinates stay null when
// the provider has nothing usable; the client must not fabricate a position
// from that.
func (h *GeolocationHandler) Lookup(c *fiber.Ctx) error {
	url := h.baseURL + "/" + c.IP()

	resp, err := h.client.Get(url)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Geolocation provider unreachable"})
	}
	defer resp.Body.Close()

	// A success body with zeroed coordinates is as unusable as a failure;
	// never forward (0,0) as a real position.
	var body ipAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body.Status != "success" || (body.Lat == 0 && body.Lon == 0) {
		return c.JSON(fiber.Map{
			"label":     "",
			"latitude":  nil,
			"longitude": nil,
		})
	}

	label := body.City
	if label != "" && body.Country != "" {
		label = fmt.Sprintf("%s, %s", body.City, body.Country)
	} else if label == "" {
		label = body.Country
	}

	return c.JSON(fiber.Map{
		"label":     label,
		"latitude":  body.Lat,
		"longitude": body.Lon,
	})
}
