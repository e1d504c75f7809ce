////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"
	jww "github.com/spf13/jwalterweatherman"
	"github.com/thedevsaddam/gojsonq"
	"gitlab.com/safesync/client/catalog"
	"gitlab.com/safesync/client/interfaces"
	"gitlab.com/safesync/client/restlike"
)

// publicKeyFields are read in order from a keys reply.
var publicKeyFields = []string{"publicKey", "publickey1"}

// httpGateway implements Gateway over restlike.
type httpGateway struct {
	req *restlike.HTTPRequest
}

// NewHTTPGateway returns a Gateway talking to the server in p.BaseURL.
func NewHTTPGateway(p Params) Gateway {
	client := &http.Client{Timeout: p.Timeout}
	jww.INFO.Printf("[GATEWAY] Using server %s (timeout %s, %d req/s)",
		p.BaseURL, p.Timeout, p.RequestsPerSecond)
	return &httpGateway{
		req: restlike.NewHTTPRequest(p.BaseURL, client, p.RequestsPerSecond),
	}
}

func (g *httpGateway) Register(ctx context.Context,
	req RegisterRequest) error {
	_, err := g.post(ctx, catalog.Register, req)
	return err
}

func (g *httpGateway) Login(ctx context.Context,
	req LoginRequest) (*LoginResponse, error) {
	msg, err := g.post(ctx, catalog.Login, req)
	if err != nil {
		return nil, err
	}
	resp := &LoginResponse{}
	if err = decode(msg, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (g *httpGateway) GetPublicKey(ctx context.Context,
	username string) (string, error) {
	msg, err := g.get(ctx, catalog.Keys,
		url.Values{catalog.UsernameParam: {username}})
	if err != nil {
		return "", err
	}

	body := string(msg.Content)
	for _, field := range publicKeyFields {
		jq := gojsonq.New().FromString(body)
		if jq.Error() != nil {
			return "", errors.Wrapf(jq.Error(),
				"failed to decode %s response", catalog.Keys)
		}
		if key, ok := jq.Find(field).(string); ok && key != "" {
			return key, nil
		}
	}
	return "", errors.Errorf("%s response for %q holds no public key",
		catalog.Keys, username)
}

func (g *httpGateway) SendMessage(ctx context.Context,
	msg interfaces.Message) error {
	_, err := g.post(ctx, catalog.SendMessage, msg)
	return err
}

func (g *httpGateway) GetMessages(ctx context.Context, sender,
	recipient string) ([]interfaces.Message, error) {
	msg, err := g.get(ctx, catalog.Messages, url.Values{
		catalog.SenderParam:    {sender},
		catalog.RecipientParam: {recipient},
	})
	if err != nil {
		return nil, err
	}
	var messages []interfaces.Message
	if err = decode(msg, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

func (g *httpGateway) SendFriendRequest(ctx context.Context,
	req AddFriendRequest) error {
	_, err := g.post(ctx, catalog.SendFriendRequest, req)
	return err
}

func (g *httpGateway) AcceptFriendRequest(ctx context.Context,
	req interfaces.FriendRequest) error {
	_, err := g.post(ctx, catalog.AcceptFriendRequest, req)
	return err
}

func (g *httpGateway) DeclineFriendRequest(ctx context.Context,
	req interfaces.FriendRequest) error {
	_, err := g.post(ctx, catalog.DeclineFriendRequest, req)
	return err
}

func (g *httpGateway) RemoveFriend(ctx context.Context,
	req RemoveFriendRequest) error {
	_, err := g.post(ctx, catalog.RemoveFriend, req)
	return err
}

func (g *httpGateway) GetFriends(ctx context.Context,
	username string) ([]APIUser, error) {
	msg, err := g.get(ctx, catalog.Friends,
		url.Values{catalog.UsernameParam: {username}})
	if err != nil {
		return nil, err
	}
	var friends []APIUser
	if err = decode(msg, &friends); err != nil {
		return nil, err
	}
	return friends, nil
}

func (g *httpGateway) GetAllUsernames(ctx context.Context) ([]string, error) {
	msg, err := g.get(ctx, catalog.Users, nil)
	if err != nil {
		return nil, err
	}
	var usernames []string
	if err = decode(msg, &usernames); err != nil {
		return nil, err
	}
	return usernames, nil
}

func (g *httpGateway) GetPendingRequests(ctx context.Context,
	username string) ([]interfaces.FriendRequest, error) {
	msg, err := g.get(ctx, catalog.PendingFriendRequests,
		url.Values{catalog.UsernameParam: {username}})
	if err != nil {
		return nil, err
	}
	var requests []interfaces.FriendRequest
	if err = decode(msg, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

func (g *httpGateway) get(ctx context.Context, path string,
	query url.Values) (*restlike.Message, error) {
	return g.do(ctx, restlike.Get, path, query, nil)
}

func (g *httpGateway) post(ctx context.Context, path string,
	body interface{}) (*restlike.Message, error) {
	content, err := json.Marshal(body)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to encode %s request", path)
	}
	return g.do(ctx, restlike.Post, path, nil, content)
}

// do sends the request and turns any non-2xx reply into a *ResponseError.
func (g *httpGateway) do(ctx context.Context, method restlike.Method,
	path string, query url.Values, content restlike.Data) (
	*restlike.Message, error) {
	msg, err := g.req.Request(ctx, method, restlike.URI(path), query, content)
	if err != nil {
		return nil, err
	}
	if !msg.OK() {
		jww.DEBUG.Printf("[GATEWAY] %s %s rejected (%s): %d", method, path,
			msg.RequestID, msg.Status)
		return nil, &ResponseError{
			Path:       path,
			StatusCode: msg.Status,
			Body:       string(msg.Content),
		}
	}
	return msg, nil
}

// decode unmarshals a JSON body into v. An empty body leaves v untouched.
func decode(msg *restlike.Message, v interface{}) error {
	if len(strings.TrimSpace(string(msg.Content))) == 0 {
		return nil
	}
	if err := json.Unmarshal(msg.Content, v); err != nil {
		return errors.Wrapf(err, "failed to decode %s response", msg.URI)
	}
	return nil
}
