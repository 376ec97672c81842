// response.go
//
// Local lead-organization store for the Raulo CRM dashboard
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of raulo-crmdb.
// raulo-crmdb is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// raulo-crmdb is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with raulo-crmdb.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package helpers

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Envelope is the body shape shared by mutation, import and error responses
type Envelope struct {
	Status   int    `json:"status"`
	Message  string `json:"message"`
	Ok       bool   `json:"ok"`
	Changed  bool   `json:"changed"`
	Imported int    `json:"imported"`
	Skipped  int    `json:"skipped"`
	Type     string `json:"type"`
}

// AssertStatus verifies the HTTP status code
func AssertStatus(t *testing.T, resp *http.Response, expected int) {
	t.Helper()
	assert.Equal(t, expected, resp.StatusCode, "unexpected status for %s %s", resp.Request.Method, resp.Request.URL)
}

// ParseJSON decodes the response body into target and closes it
func ParseJSON(t *testing.T, resp *http.Response, target interface{}) {
	t.Helper()
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "Failed to read response body")
	require.NoError(t, json.Unmarshal(body, target), "Failed to decode JSON: %s", body)
}

// ParseEnvelope decodes a mutation, import or error response
func ParseEnvelope(t *testing.T, resp *http.Response) Envelope {
	t.Helper()
	var env Envelope
	ParseJSON(t, resp, &env)
	return env
}

// AssertChanged checks a 200 mutation response and its changed flag
func AssertChanged(t *testing.T, resp *http.Response, expected bool) {
	t.Helper()
	AssertStatus(t, resp, http.StatusOK)
	env := ParseEnvelope(t, resp)
	assert.True(t, env.Ok, "mutation response not ok: %s", env.Message)
	assert.Equal(t, expected, env.Changed, "changed flag")
}

// AssertImported checks a 200 import response and its counts
func AssertImported(t *testing.T, resp *http.Response, imported, skipped int) {
	t.Helper()
	AssertStatus(t, resp, http.StatusOK)
	env := ParseEnvelope(t, resp)
	assert.Equal(t, imported, env.Imported, "imported rows")
	assert.Equal(t, skipped, env.Skipped, "skipped rows")
}
