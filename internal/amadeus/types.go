package amadeus

import "encoding/json"

// Destination is a city record from the reference-data locations search.
type Destination struct {
	ID       string `json:"id,omitempty"`
	IataCode string `json:"iataCode,omitempty"`
	Name     string `json:"name"`
	Address  struct {
		CountryCode string `json:"countryCode,omitempty"`
		CountryName string `json:"countryName,omitempty"`
	} `json:"address"`
}

// DestinationResult is the provider's search response envelope.
type DestinationResult struct {
	Data []Destination `json:"data"`
}

// FlightOffer is a provider-shaped flight offer. Only the fields the product
// renders are named; the full offer is preserved in Raw for itinerary
// payloads.
type FlightOffer struct {
	ID    string `json:"id,omitempty"`
	Price struct {
		Total    string `json:"total,omitempty"`
		Currency string `json:"currency,omitempty"`
	} `json:"price"`
	Itineraries []struct {
		Duration string `json:"duration,omitempty"`
		Segments []struct {
			Departure struct {
				IataCode string `json:"iataCode"`
				At       string `json:"at"`
			} `json:"departure"`
			Arrival struct {
				IataCode string `json:"iataCode"`
				At       string `json:"at"`
			} `json:"arrival"`
			CarrierCode string `json:"carrierCode,omitempty"`
			Number      string `json:"number,omitempty"`
		} `json:"segments"`
	} `json:"itineraries"`

	Raw json.RawMessage `json:"-"`
}

// UnmarshalJSON decodes the named fields and keeps the provider's original
// bytes so the offer round-trips without schema loss.
func (f *FlightOffer) UnmarshalJSON(b []byte) error {
	type plain FlightOffer
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*f = FlightOffer(p)
	f.Raw = append(json.RawMessage(nil), b...)
	return nil
}

// MarshalJSON emits the provider's original bytes when available.
func (f FlightOffer) MarshalJSON() ([]byte, error) {
	if len(f.Raw) > 0 {
		return f.Raw, nil
	}
	type plain FlightOffer
	return json.Marshal(plain(f))
}

// FlightOfferResult is the flight-offers response envelope.
type FlightOfferResult struct {
	Data []FlightOffer `json:"data"`
}

// HotelOffer is a provider-shaped hotel + offers record.
type HotelOffer struct {
	Hotel struct {
		HotelID string `json:"hotelId,omitempty"`
		Name    string `json:"name,omitempty"`
		Rating  string `json:"rating,omitempty"`
	} `json:"hotel"`
	Offers []struct {
		Price struct {
			Total    string `json:"total,omitempty"`
			Currency string `json:"currency,omitempty"`
		} `json:"price"`
	} `json:"offers"`

	Raw json.RawMessage `json:"-"`
}

// UnmarshalJSON decodes the named fields and keeps the provider's original
// bytes so the offer round-trips without schema loss.
func (h *HotelOffer) UnmarshalJSON(b []byte) error {
	type plain HotelOffer
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*h = HotelOffer(p)
	h.Raw = append(json.RawMessage(nil), b...)
	return nil
}

// MarshalJSON emits the provider's original bytes when available.
func (h HotelOffer) MarshalJSON() ([]byte, error) {
	if len(h.Raw) > 0 {
		return h.Raw, nil
	}
	type plain HotelOffer
	return json.Marshal(plain(h))
}

// HotelOfferResult is the hotel-offers response envelope.
type HotelOfferResult struct {
	Data []HotelOffer `json:"data"`
}

// FlightQuery holds the required parameters for a flight-offers search.
// Adults defaults to 1 when zero.
type FlightQuery struct {
	Origin        string
	Destination   string
	DepartureDate string
	Adults        int
}
