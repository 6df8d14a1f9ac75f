// Package registry looks up health facility data in the national CNES
// registry and resolves its numeric region and municipality codes to
// human-readable names via the IBGE localities API. Failures distinguish
// "not found" from "unreachable" so the user sees the right message.
package registry

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/prescrito/prescrito-api/domain"
	"github.com/prescrito/prescrito-api/interfaces"
	"github.com/prescrito/prescrito-api/logging"
)

// Compile-time check to ensure Client implements RegistryClient
var _ interfaces.RegistryClient = (*Client)(nil)

var nonDigits = regexp.MustCompile(`\D`)

// User-facing lookup messages.
const (
	msgInvalidCnes     = "CNES inválido. Deve conter 7 dígitos."
	msgCnesNotFound    = "Nenhum estabelecimento encontrado com o CNES informado."
	msgCnesUnreachable = "Não foi possível conectar à API do CNES. Verifique sua conexão ou tente novamente mais tarde."
)

type establishment struct {
	CodigoCnes            int    `json:"codigo_cnes"`
	NomeFantasia          string `json:"nome_fantasia"`
	Endereco              string `json:"endereco_estabelecimento"`
	Numero                string `json:"numero_estabelecimento"`
	Bairro                string `json:"bairro_estabelecimento"`
	CodigoUf              int    `json:"codigo_uf"`
	CodigoMunicipio       int    `json:"codigo_municipio"`
	Telefone              string `json:"numero_telefone_estabelecimento"`
}

type ibgeUf struct {
	Sigla string `json:"sigla"`
}

type ibgeMunicipio struct {
	Nome string `json:"nome"`
}

// Client resolves facility registry codes to profile fields.
type Client struct {
	cnes *resty.Client
	ibge *resty.Client
}

// NewClient creates a registry client over the CNES and IBGE endpoints.
func NewClient(cnesBaseURL, ibgeBaseURL string) *Client {
	return &Client{
		cnes: resty.New().
			SetBaseURL(cnesBaseURL).
			SetTimeout(15 * time.Second).
			SetHeader("Accept", "application/json"),
		ibge: resty.New().
			SetBaseURL(ibgeBaseURL).
			SetTimeout(15 * time.Second).
			SetHeader("Accept", "application/json"),
	}
}

// FetchEstablishment resolves a 7-digit facility code to profile fields.
// Location names come from a second lookup against IBGE; an IBGE failure
// degrades to empty city/UF fields rather than failing the whole lookup.
func (c *Client) FetchEstablishment(ctx context.Context, cnes string) (domain.ProfileData, error) {
	cleaned := nonDigits.ReplaceAllString(cnes, "")
	if len(cleaned) != 7 {
		return domain.ProfileData{}, &domain.LookupError{Kind: domain.LookupNotFound, Message: msgInvalidCnes}
	}

	var est establishment
	resp, err := c.cnes.R().
		SetContext(ctx).
		SetResult(&est).
		Get("/cnes/estabelecimentos/" + cleaned)
	if err != nil {
		return domain.ProfileData{}, &domain.LookupError{Kind: domain.LookupUnreachable, Message: msgCnesUnreachable, Err: err}
	}
	if resp.StatusCode() == http.StatusNotFound {
		return domain.ProfileData{}, &domain.LookupError{Kind: domain.LookupNotFound, Message: msgCnesNotFound}
	}
	if resp.IsError() {
		return domain.ProfileData{}, &domain.LookupError{
			Kind:    domain.LookupUnreachable,
			Message: msgCnesUnreachable,
			Err:     fmt.Errorf("CNES API returned status %d", resp.StatusCode()),
		}
	}
	if est.CodigoCnes == 0 {
		return domain.ProfileData{}, &domain.LookupError{Kind: domain.LookupNotFound, Message: msgCnesNotFound}
	}

	address := est.Endereco
	if est.Numero != "" {
		address = strings.TrimSpace(strings.Join([]string{est.Endereco, est.Numero}, ", "))
	}

	profile := domain.ProfileData{
		ClinicName:         est.NomeFantasia,
		ClinicAddress:      address,
		ClinicNeighborhood: est.Bairro,
		ClinicPhone:        est.Telefone,
		ClinicCnes:         cleaned,
	}

	uf, municipio := c.resolveLocation(ctx, est.CodigoUf, est.CodigoMunicipio)
	profile.ClinicUf = uf
	profile.ClinicCity = municipio

	return profile, nil
}

// resolveLocation translates IBGE codes into the UF abbreviation and the
// municipality name. Failures are logged and degrade to empty strings.
func (c *Client) resolveLocation(ctx context.Context, ufCode, municipioCode int) (string, string) {
	var uf ibgeUf
	resp, err := c.ibge.R().
		SetContext(ctx).
		SetResult(&uf).
		Get(fmt.Sprintf("/api/v1/localidades/estados/%d", ufCode))
	if err != nil || resp.IsError() {
		logging.Warn("Failed to resolve UF from IBGE", "uf_code", ufCode, "error", err)
		uf.Sigla = ""
	}

	var municipio ibgeMunicipio
	resp, err = c.ibge.R().
		SetContext(ctx).
		SetResult(&municipio).
		Get(fmt.Sprintf("/api/v1/localidades/municipios/%d", municipioCode))
	if err != nil || resp.IsError() {
		logging.Warn("Failed to resolve municipality from IBGE", "municipio_code", municipioCode, "error", err)
		municipio.Nome = ""
	}

	return uf.Sigla, municipio.Nome
}
