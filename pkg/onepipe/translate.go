package onepipe

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Translation from raw provider responses to the client's result shapes.
// Kept pure and in one place so provider schema drift never leaks into the
// mandate lifecycle logic. Current mapping targets the v2 transact API.

type rawEnvelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decodeEnvelope(raw []byte) (*rawEnvelope, error) {
	var env rawEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("onepipe: malformed response: %w", err)
	}
	if !strings.EqualFold(env.Status, "successful") {
		return nil, fmt.Errorf("onepipe: provider rejected request: %s", env.Message)
	}
	return &env, nil
}

func parseOwnership(raw []byte) (*OwnershipResult, error) {
	env, err := decodeEnvelope(raw)
	if err != nil {
		return nil, err
	}

	var data struct {
		BvnLinked   bool   `json:"bvn_linked"`
		AccountName string `json:"account_name"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, fmt.Errorf("onepipe: malformed bvn data: %w", err)
	}

	return &OwnershipResult{Linked: data.BvnLinked, AccountName: data.AccountName}, nil
}

func parseMandate(raw []byte) (*MandateHandle, error) {
	env, err := decodeEnvelope(raw)
	if err != nil {
		return nil, err
	}

	var data struct {
		MandateID      string `json:"mandate_id"`
		Reference      string `json:"reference"`
		VirtualAccount string `json:"virtual_account"`
		AccountNumber  string `json:"account_number"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, fmt.Errorf("onepipe: malformed mandate data: %w", err)
	}

	externalID := data.MandateID
	if externalID == "" {
		externalID = data.Reference
	}
	if externalID == "" {
		return nil, fmt.Errorf("onepipe: response carries no mandate identifier")
	}

	handle := &MandateHandle{ExternalID: externalID}
	if va := firstNonEmpty(data.VirtualAccount, data.AccountNumber); va != "" {
		handle.VirtualAccount = &va
	}
	return handle, nil
}

func parseStatus(raw []byte) (string, error) {
	env, err := decodeEnvelope(raw)
	if err != nil {
		return "", err
	}

	var data struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return "", fmt.Errorf("onepipe: malformed status data: %w", err)
	}
	return data.Status, nil
}

func parseBanks(raw []byte) ([]Bank, error) {
	env, err := decodeEnvelope(raw)
	if err != nil {
		return nil, err
	}

	var data struct {
		Banks []Bank `json:"banks"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, fmt.Errorf("onepipe: malformed bank list: %w", err)
	}
	return data.Banks, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
