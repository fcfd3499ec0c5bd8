package api

import (
	"net/http"
	"net/url"
	"regexp"
	"testing"
)

func TestUpdateProfile(t *testing.T) {
	app, _ := newTestApp(t)
	token := loginAdmin(t, app)

	response, body := doRequest(t, app, jsonRequest(t, http.MethodPut, "/users/me", map[string]any{
		"dob":             "1988-05-04",
		"life_expectancy": 90,
		"nickname":        "Sam",
	}, token))
	if response.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body %v", response.StatusCode, body)
	}

	userConfig, _ := body["user_config"].(map[string]any)
	if userConfig["dob"] != "1988-05-04" || userConfig["life_expectancy"] != float64(90) || userConfig["nickname"] != "Sam" {
		t.Fatalf("user_config = %v", userConfig)
	}

	// A fresh login must see the persisted profile.
	_, loginBody := login(t, app, testAdminUsername, testAdminPassword)
	userConfig, _ = loginBody["user_config"].(map[string]any)
	if userConfig["dob"] != "1988-05-04" || userConfig["nickname"] != "Sam" {
		t.Fatalf("persisted user_config = %v", userConfig)
	}
}

func TestUpdateProfileDefaultsLifeExpectancy(t *testing.T) {
	app, _ := newTestApp(t)
	token := loginAdmin(t, app)

	response, body := doRequest(t, app, jsonRequest(t, http.MethodPut, "/users/me", map[string]any{
		"dob": "1988-05-04",
	}, token))
	if response.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body %v", response.StatusCode, body)
	}
	userConfig, _ := body["user_config"].(map[string]any)
	if userConfig["life_expectancy"] != float64(100) {
		t.Fatalf("life_expectancy = %v, want the 100 default", userConfig["life_expectancy"])
	}
}

func TestUpdateProfileInvalidDOB(t *testing.T) {
	app, _ := newTestApp(t)
	token := loginAdmin(t, app)

	for _, dob := range []string{"", "04-05-1988", "not a date"} {
		response, body := doRequest(t, app, jsonRequest(t, http.MethodPut, "/users/me", map[string]any{
			"dob": dob,
		}, token))
		if response.StatusCode != http.StatusBadRequest {
			t.Fatalf("dob %q status = %d, body %v", dob, response.StatusCode, body)
		}
	}
}

func TestChangePasswordFlow(t *testing.T) {
	app, _ := newTestApp(t)
	token := loginAdmin(t, app)

	response, body := doRequest(t, app, jsonRequest(t, http.MethodPost, "/users/me/password", map[string]any{
		"old_password":     testAdminPassword,
		"new_password":     "a-new-password-1",
		"confirm_password": "a-new-password-1",
	}, token))
	if response.StatusCode != http.StatusOK || body["msg"] != "password updated" {
		t.Fatalf("status = %d, body %v", response.StatusCode, body)
	}

	login(t, app, testAdminUsername, "a-new-password-1")

	values := url.Values{}
	values.Set("username", testAdminUsername)
	values.Set("password", testAdminPassword)
	response, _ = doRequest(t, app, formRequest(http.MethodPost, "/token", values, ""))
	if response.StatusCode != http.StatusBadRequest {
		t.Fatalf("old password still accepted, status = %d", response.StatusCode)
	}
}

func TestChangePasswordValidationErrors(t *testing.T) {
	app, _ := newTestApp(t)
	token := loginAdmin(t, app)

	tests := []struct {
		name    string
		payload map[string]any
		wantMsg string
	}{
		{
			name: "wrong old password",
			payload: map[string]any{
				"old_password":     "not-the-password",
				"new_password":     "a-new-password-1",
				"confirm_password": "a-new-password-1",
			},
			wantMsg: "old password is incorrect",
		},
		{
			name: "confirmation mismatch",
			payload: map[string]any{
				"old_password":     testAdminPassword,
				"new_password":     "a-new-password-1",
				"confirm_password": "a-different-password",
			},
			wantMsg: "new password and confirmation do not match",
		},
		{
			name: "too short",
			payload: map[string]any{
				"old_password":     testAdminPassword,
				"new_password":     "short",
				"confirm_password": "short",
			},
			wantMsg: "new password must be at least 8 characters",
		},
		{
			name:    "missing fields",
			payload: map[string]any{},
			wantMsg: "old, new, and confirm passwords are required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			response, body := doRequest(t, app, jsonRequest(t, http.MethodPost, "/users/me/password", tt.payload, token))
			if response.StatusCode != http.StatusBadRequest {
				t.Fatalf("status = %d, body %v", response.StatusCode, body)
			}
			if body["error"] != tt.wantMsg {
				t.Fatalf("error = %v, want %q", body["error"], tt.wantMsg)
			}
		})
	}
}

func TestUploadAvatar(t *testing.T) {
	app, _ := newTestApp(t)
	token := loginAdmin(t, app)

	request := multipartRequest(t, http.MethodPost, "/users/me/avatar", token, []multipartField{
		{name: "avatar", filename: "me.png", contentType: "image/png", data: testPNG(t, 64, 48)},
	})
	response, body := doRequest(t, app, request)
	if response.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body %v", response.StatusCode, body)
	}

	avatarURL, _ := body["avatar_url"].(string)
	urlPattern := regexp.MustCompile(`^/static/avatars/avatar_\d+_[0-9a-f]{8}\.jpg$`)
	if !urlPattern.MatchString(avatarURL) {
		t.Fatalf("avatar_url = %q, want /static/avatars/avatar_<user>_<8 hex>.jpg", avatarURL)
	}

	_, loginBody := login(t, app, testAdminUsername, testAdminPassword)
	userConfig, _ := loginBody["user_config"].(map[string]any)
	if userConfig["avatar_url"] != avatarURL {
		t.Fatalf("persisted avatar_url = %v, want %q", userConfig["avatar_url"], avatarURL)
	}
}

func TestUploadAvatarRequiresFile(t *testing.T) {
	app, _ := newTestApp(t)
	token := loginAdmin(t, app)

	request := multipartRequest(t, http.MethodPost, "/users/me/avatar", token, []multipartField{
		{name: "unrelated", value: "field"},
	})
	response, body := doRequest(t, app, request)
	if response.StatusCode != http.StatusBadRequest || body["error"] != "avatar file is required" {
		t.Fatalf("status = %d, body %v", response.StatusCode, body)
	}
}

func TestUploadAvatarRejectsUnsupportedType(t *testing.T) {
	app, _ := newTestApp(t)
	token := loginAdmin(t, app)

	request := multipartRequest(t, http.MethodPost, "/users/me/avatar", token, []multipartField{
		{name: "avatar", filename: "notes.txt", data: []byte("plain text")},
	})
	response, body := doRequest(t, app, request)
	if response.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, body %v", response.StatusCode, body)
	}
}
