package providers

import (
	"bytes"
	"context"
	"log/slog"
	"net/url"
	"strings"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-zipcache/zipcache"
)

// ViaCEPName identifies the ViaCEP provider in config and logs.
const ViaCEPName = "viacep"

// ViaCEPBaseURL is the public ViaCEP endpoint.
const ViaCEPBaseURL = "https://viacep.com.br"

var _ zipcache.Provider = (*ViaCEP)(nil)

// ViaCEP resolves Brazilian postal codes through viacep.com.br.
type ViaCEP struct {
	baseURL string
	client  *httpClient
	logger  *slog.Logger
}

// NewViaCEP returns a ViaCEP provider.
func NewViaCEP(opts ...Option) *ViaCEP {
	o := newOptions(ViaCEPBaseURL, opts)
	return &ViaCEP{
		baseURL: o.baseURL,
		client:  newHTTPClient(o.client),
		logger:  o.logger,
	}
}

type viaCEPResponse struct {
	Erro        flag   `json:"erro"`
	CEP         string `json:"cep"`
	Logradouro  string `json:"logradouro"`
	Complemento string `json:"complemento"`
	Bairro      string `json:"bairro"`
	Localidade  string `json:"localidade"`
	UF          string `json:"uf"`
}

// flag accepts both true and "true"; ViaCEP has shipped both.
type flag bool

func (f *flag) UnmarshalJSON(data []byte) error {
	v := bytes.Trim(bytes.TrimSpace(data), `"`)
	*f = flag(strings.EqualFold(string(v), "true"))
	return nil
}

func (p *ViaCEP) Name() string { return ViaCEPName }

// Resolve looks the code up on ViaCEP. The "erro" marker, transport errors,
// non-2xx responses and undecodable bodies all report absence.
func (p *ViaCEP) Resolve(ctx context.Context, zipCode string) (zipcache.AddressFields, bool) {
	endpoint := p.baseURL + "/ws/" + url.PathEscape(zipCode) + "/json/"

	var body viaCEPResponse
	if _, err := p.client.getJSON(ctx, endpoint, &body); err != nil {
		logAbsence(ctx, p.logger, ViaCEPName, zipCode, err)
		return zipcache.AddressFields{}, false
	}

	if body.Erro {
		logAbsence(ctx, p.logger, ViaCEPName, zipCode,
			errors.New("viacep does not know this zip code", errors.CategoryNotFound))
		return zipcache.AddressFields{}, false
	}

	return zipcache.AddressFields{
		ZipCode:      stripFormatting(body.CEP),
		Street:       body.Logradouro,
		City:         body.Localidade,
		Region:       body.UF,
		Neighborhood: body.Bairro,
	}, true
}
