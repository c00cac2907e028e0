// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package authz

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-doc-vault/internal/dispatch"
	"github.com/MKhiriev/go-doc-vault/models"
	fga "github.com/openfga/go-sdk/client"
)

// targetedRequest is satisfied by every request aimed at one document.
type targetedRequest interface {
	TargetID() string
}

// RelationChecker answers whether subject stands in relation to object.
// The production implementation queries an OpenFGA store; tests and
// single-user deployments use the static checker.
type RelationChecker interface {
	Check(ctx context.Context, subject, relation, object string) (dispatch.Decision, error)
}

// Relationship authorizes document-scoped requests through a relation
// check: the caller must stand in the configured relation ("viewer",
// "editor") to the target document. It replaces the plain ownership check
// in deployments where documents are shared across accounts.
type Relationship struct {
	requestName string
	relation    string
	checker     RelationChecker
}

// NewRelationship binds a relation check to one request shape.
func NewRelationship(requestName, relation string, checker RelationChecker) *Relationship {
	return &Relationship{
		requestName: requestName,
		relation:    relation,
		checker:     checker,
	}
}

// RequestName implements the dispatch authorizer contract.
func (a *Relationship) RequestName() string { return a.requestName }

// Authorize asks the relation store whether the caller may touch the
// target document.
func (a *Relationship) Authorize(ctx context.Context, request dispatch.Request, identity models.Identity) (dispatch.Decision, error) {
	targeted, ok := request.(targetedRequest)
	if !ok {
		return dispatch.Decision{}, fmt.Errorf("request %q targets no document", request.Name())
	}

	subject := fmt.Sprintf("user:%d", identity.UserID)
	object := fmt.Sprintf("document:%s", targeted.TargetID())

	return a.checker.Check(ctx, subject, a.relation, object)
}

// OpenFGAConfig carries the connection settings of the relation store.
type OpenFGAConfig struct {
	APIURL  string
	StoreID string
	ModelID string
}

// OpenFGA is the RelationChecker backed by an OpenFGA store.
type OpenFGA struct {
	client  *fga.OpenFgaClient
	modelID string
}

// NewOpenFGA connects the relation checker to an OpenFGA store. ModelID is
// optional; when set it pins every check to one authorization model.
func NewOpenFGA(cfg OpenFGAConfig) (*OpenFGA, error) {
	conf := &fga.ClientConfiguration{
		ApiUrl:  cfg.APIURL,
		StoreId: cfg.StoreID,
	}
	if cfg.ModelID != "" {
		conf.AuthorizationModelId = cfg.ModelID
	}

	client, err := fga.NewSdkClient(conf)
	if err != nil {
		return nil, fmt.Errorf("error initializing openfga client: %w", err)
	}

	return &OpenFGA{client: client, modelID: cfg.ModelID}, nil
}

// Check queries the store for one relation tuple. Store unavailability is
// a downstream dependency failure, not a denial.
func (o *OpenFGA) Check(ctx context.Context, subject, relation, object string) (dispatch.Decision, error) {
	checkReq := fga.ClientCheckRequest{
		User:     subject,
		Relation: relation,
		Object:   object,
	}

	resp, err := o.client.Check(ctx).Body(checkReq).Execute()
	if err != nil {
		return dispatch.Decision{}, fmt.Errorf("%w: relation store check failed: %s", dispatch.ErrDependencyUnavailable, err)
	}

	if resp.Allowed != nil && *resp.Allowed {
		return dispatch.Allow(), nil
	}

	return dispatch.Deny(fmt.Sprintf("caller lacks %q relation to the document", relation)), nil
}

// Static is the RelationChecker for deployments without a relation store.
type Static struct {
	AlwaysAllow bool
}

// Check allows or denies everything, per configuration.
func (s *Static) Check(ctx context.Context, subject, relation, object string) (dispatch.Decision, error) {
	if s.AlwaysAllow {
		return dispatch.Allow(), nil
	}

	return dispatch.Deny("relation checks are disabled"), nil
}
