// Package ioeutils implements the Entrez E-utilities client over HTTP.
// This is an impure package that performs network operations.
package ioeutils

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gnames/bsfetch/pkg/config"
	"github.com/gnames/bsfetch/pkg/eutils"
	"github.com/gnames/gnfmt"
)

// Client talks to the NCBI E-utilities endpoints.
// It implements the eutils.Client interface.
type Client struct {
	baseURL string
	email   string
	tool    string
	apiKey  string
	http    *http.Client
}

// New creates an E-utilities client from Entrez settings.
func New(cfg config.EntrezConfig) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		email:   cfg.Email,
		tool:    cfg.Tool,
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// esearchResponse covers the part of the esearch JSON we use.
type esearchResponse struct {
	Result struct {
		IDList []string `json:"idlist"`
	} `json:"esearchresult"`
}

// elinkResponse covers the part of the elink JSON we use.
type elinkResponse struct {
	LinkSets []struct {
		LinkSetDBs []struct {
			DBTo  string   `json:"dbto"`
			Links []string `json:"links"`
		} `json:"linksetdbs"`
	} `json:"linksets"`
}

// bioSampleSetXML mirrors the efetch BioSample XML payload.
type bioSampleSetXML struct {
	XMLName    xml.Name       `xml:"BioSampleSet"`
	BioSamples []bioSampleXML `xml:"BioSample"`
}

type bioSampleXML struct {
	Accession  string             `xml:"accession,attr"`
	Attributes []bioSampleAttrXML `xml:"Attributes>Attribute"`
}

type bioSampleAttrXML struct {
	Name  string `xml:"attribute_name,attr"`
	Value string `xml:",chardata"`
}

// Search returns the internal ids matching term in db, in the relevance
// order chosen by the remote service.
func (c *Client) Search(
	ctx context.Context,
	db eutils.DB,
	term string,
) ([]string, error) {
	q := url.Values{}
	q.Set("db", string(db))
	q.Set("term", term)
	q.Set("retmode", "json")

	body, err := c.get(ctx, "esearch.fcgi", q, "esearch")
	if err != nil {
		return nil, err
	}

	var res esearchResponse
	enc := gnfmt.GNjson{}
	if err := enc.Decode(body, &res); err != nil {
		return nil, &eutils.TransportError{
			Op:  "esearch",
			Err: fmt.Errorf("cannot decode response: %w", err),
		}
	}

	return res.Result.IDList, nil
}

// Link returns the ids in 'to' that are cross-referenced from id in 'from'.
func (c *Client) Link(
	ctx context.Context,
	from, to eutils.DB,
	id string,
) ([]string, error) {
	q := url.Values{}
	q.Set("dbfrom", string(from))
	q.Set("db", string(to))
	q.Set("id", id)
	q.Set("retmode", "json")

	body, err := c.get(ctx, "elink.fcgi", q, "elink")
	if err != nil {
		return nil, err
	}

	var res elinkResponse
	enc := gnfmt.GNjson{}
	if err := enc.Decode(body, &res); err != nil {
		return nil, &eutils.TransportError{
			Op:  "elink",
			Err: fmt.Errorf("cannot decode response: %w", err),
		}
	}

	for _, ls := range res.LinkSets {
		for _, lsdb := range ls.LinkSetDBs {
			if len(lsdb.Links) > 0 {
				return lsdb.Links, nil
			}
		}
	}

	// no cross-reference link exists, a defined outcome
	return nil, nil
}

// FetchBioSample retrieves the full BioSample record for id.
// Returns (nil, nil) when the remote service has no record for the id.
func (c *Client) FetchBioSample(
	ctx context.Context,
	id string,
) (*eutils.BioSample, error) {
	q := url.Values{}
	q.Set("db", string(eutils.DBBioSample))
	q.Set("id", id)
	q.Set("retmode", "xml")

	body, err := c.get(ctx, "efetch.fcgi", q, "efetch")
	if err != nil {
		return nil, err
	}

	var set bioSampleSetXML
	if err := xml.Unmarshal(body, &set); err != nil {
		return nil, &eutils.TransportError{
			Op:  "efetch",
			Err: fmt.Errorf("cannot decode response: %w", err),
		}
	}

	if len(set.BioSamples) == 0 {
		return nil, nil
	}

	bs := set.BioSamples[0]
	res := &eutils.BioSample{
		Accession:  bs.Accession,
		Attributes: make([]eutils.Attribute, len(bs.Attributes)),
	}
	for i, attr := range bs.Attributes {
		res.Attributes[i] = eutils.Attribute{
			Name:  attr.Name,
			Value: strings.TrimSpace(attr.Value),
		}
	}

	return res, nil
}

// get performs one E-utilities request and returns the response body.
// The body is closed on every path. All failures, including unexpected
// HTTP statuses, surface as *eutils.TransportError.
func (c *Client) get(
	ctx context.Context,
	endpoint string,
	q url.Values,
	op string,
) ([]byte, error) {
	// tool/email/api_key are required by NCBI usage policy
	q.Set("tool", c.tool)
	q.Set("email", c.email)
	if c.apiKey != "" {
		q.Set("api_key", c.apiKey)
	}

	reqURL := c.baseURL + "/" + endpoint + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &eutils.TransportError{Op: op, Err: err}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &eutils.TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &eutils.TransportError{
			Op: op,
			Err: fmt.Errorf("unexpected status %d from %s",
				resp.StatusCode, endpoint),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &eutils.TransportError{
			Op:  op,
			Err: fmt.Errorf("cannot read response: %w", err),
		}
	}

	return body, nil
}
