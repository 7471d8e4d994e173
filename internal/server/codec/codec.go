// Package codec renders an AuthToken as the hypermedia document returned by
// the login API and parses such documents back.
//
// The document layout is a wire contract: key names, nesting and the order
// of the fixed children must not change.
package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/authgate/internal/common"
	"github.com/dmitrijs2005/authgate/internal/server/models"
)

const (
	authTokenName      = "authToken"
	permissionUnitName = "permissionUnit"
)

var ErrInvalidDocument = errors.New("invalid auth token document")

type document struct {
	Data        group       `json:"data"`
	ActionLinks actionLinks `json:"actionLinks"`
}

type group struct {
	Children []child `json:"children"`
	Name     string  `json:"name"`
}

// child is either a leaf (name, value) or a repeated link
// (name, repeatId, children).
type child struct {
	Name     string  `json:"name"`
	Value    *string `json:"value,omitempty"`
	RepeatID string  `json:"repeatId,omitempty"`
	Children []child `json:"children,omitempty"`
}

type actionLinks struct {
	Renew  action `json:"renew"`
	Delete action `json:"delete"`
}

type action struct {
	RequestMethod string `json:"requestMethod"`
	Rel           string `json:"rel"`
	URL           string `json:"url"`
	Accept        string `json:"accept,omitempty"`
}

func leaf(name, value string) child {
	return child{Name: name, Value: &value}
}

// Encode renders token and the action URL used by both the renew and the
// delete link. The output carries no insignificant whitespace and is
// byte-for-byte stable for equal inputs.
func Encode(token *models.AuthToken, actionURL string) ([]byte, error) {
	children := []child{
		leaf("token", token.Token),
		leaf("validUntil", strconv.FormatInt(token.ValidUntil, 10)),
		leaf("renewUntil", strconv.FormatInt(token.RenewUntil, 10)),
		leaf("userId", token.UserID),
		leaf("loginId", token.LoginID),
	}
	if token.FirstName != "" {
		children = append(children, leaf("firstName", token.FirstName))
	}
	if token.LastName != "" {
		children = append(children, leaf("lastName", token.LastName))
	}
	for i, unit := range token.PermissionUnits {
		children = append(children, child{
			Name:     permissionUnitName,
			RepeatID: strconv.Itoa(i + 1),
			Children: []child{
				leaf("linkedRecordType", permissionUnitName),
				leaf("linkedRecordId", unit),
			},
		})
	}

	doc := document{
		Data: group{Children: children, Name: authTokenName},
		ActionLinks: actionLinks{
			Renew: action{
				RequestMethod: "POST",
				Rel:           "renew",
				URL:           actionURL,
				Accept:        common.MediaTypeAuthToken,
			},
			Delete: action{
				RequestMethod: "DELETE",
				Rel:           "delete",
				URL:           actionURL,
			},
		},
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encode auth token: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Decode parses a document produced by Encode. It returns the token and the
// URL of its renew action. TokenID is not part of the document and is left
// empty; callers derive it from the Location header or the action URL.
func Decode(body []byte) (*models.AuthToken, string, error) {
	var doc document
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	if doc.Data.Name != authTokenName {
		return nil, "", fmt.Errorf("%w: unexpected node %q", ErrInvalidDocument, doc.Data.Name)
	}

	token := &models.AuthToken{}
	for _, c := range doc.Data.Children {
		if c.Name == permissionUnitName {
			for _, link := range c.Children {
				if link.Name == "linkedRecordId" && link.Value != nil {
					token.PermissionUnits = append(token.PermissionUnits, *link.Value)
				}
			}
			continue
		}
		if c.Value == nil {
			continue
		}

		v := *c.Value
		var err error
		switch c.Name {
		case "token":
			token.Token = v
		case "validUntil":
			token.ValidUntil, err = strconv.ParseInt(v, 10, 64)
		case "renewUntil":
			token.RenewUntil, err = strconv.ParseInt(v, 10, 64)
		case "userId":
			token.UserID = v
		case "loginId":
			token.LoginID = v
		case "firstName":
			token.FirstName = v
		case "lastName":
			token.LastName = v
		}
		if err != nil {
			return nil, "", fmt.Errorf("%w: %s: %w", ErrInvalidDocument, c.Name, err)
		}
	}

	return token, doc.ActionLinks.Renew.URL, nil
}
