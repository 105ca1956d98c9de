package providers

import (
	"context"
	"log/slog"
	"net/url"

	"github.com/goliatone/go-zipcache/zipcache"
)

// BrasilAPIName identifies the BrasilAPI provider in config and logs.
const BrasilAPIName = "brasilapi"

// BrasilAPIBaseURL is the public BrasilAPI endpoint.
const BrasilAPIBaseURL = "https://brasilapi.com.br"

var _ zipcache.Provider = (*BrasilAPI)(nil)

// BrasilAPI resolves Brazilian postal codes through the BrasilAPI CEP v1
// endpoint. It answers 404 for unknown codes.
type BrasilAPI struct {
	baseURL string
	client  *httpClient
	logger  *slog.Logger
}

// NewBrasilAPI returns a BrasilAPI provider.
func NewBrasilAPI(opts ...Option) *BrasilAPI {
	o := newOptions(BrasilAPIBaseURL, opts)
	return &BrasilAPI{
		baseURL: o.baseURL,
		client:  newHTTPClient(o.client),
		logger:  o.logger,
	}
}

type brasilAPIResponse struct {
	CEP          string `json:"cep"`
	State        string `json:"state"`
	City         string `json:"city"`
	Neighborhood string `json:"neighborhood"`
	Street       string `json:"street"`
}

func (p *BrasilAPI) Name() string { return BrasilAPIName }

func (p *BrasilAPI) Resolve(ctx context.Context, zipCode string) (zipcache.AddressFields, bool) {
	endpoint := p.baseURL + "/api/cep/v1/" + url.PathEscape(zipCode)

	var body brasilAPIResponse
	if _, err := p.client.getJSON(ctx, endpoint, &body); err != nil {
		logAbsence(ctx, p.logger, BrasilAPIName, zipCode, err)
		return zipcache.AddressFields{}, false
	}

	return zipcache.AddressFields{
		ZipCode:      stripFormatting(body.CEP),
		Street:       body.Street,
		City:         body.City,
		Region:       body.State,
		Neighborhood: body.Neighborhood,
	}, true
}
