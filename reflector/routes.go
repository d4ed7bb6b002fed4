package reflector

import (
	"net/http"

	"github.com/podhmo/go-reflector/binding"
	"github.com/podhmo/go-reflector/message"
)

// Route is one entry of the route table. An empty Methods accepts any method.
type Route struct {
	Name    string
	Path    string
	Methods []string
	// Rules lists the declarative bindings of the route, if it has any.
	Rules   binding.Rules
	Handler HandlerFunc
}

func route(name, path string, methods []string, h HandlerFunc) Route {
	return Route{Name: name, Path: path, Methods: methods, Handler: h}
}

func boundRoute(name, path string, methods []string, rules binding.Rules, fn func(*Context, binding.Values) (string, error)) Route {
	return Route{Name: name, Path: path, Methods: methods, Rules: rules, Handler: Bound(rules, fn)}
}

var (
	anyMethod  []string
	getOnly    = []string{http.MethodGet}
	postOnly   = []string{http.MethodPost}
	patchOnly  = []string{http.MethodPatch}
	deleteOnly = []string{http.MethodDelete}
)

// UsersPrefix is the common path of the user resource routes.
const UsersPrefix = "/mapping/users"

// Routes returns the route table.
func Routes() []Route {
	text := message.StringConverter{}
	return []Route{
		route("log-test", "/log-test", anyMethod, Text(LogTest)),

		route("request-body-string-v1", "/request-body-string-v1", postOnly, RequestBodyStringV1),
		route("request-body-string-v2", "/request-body-string-v2", postOnly, Streams(RequestBodyStringV2)),
		route("request-body-string-v3", "/request-body-string-v3", postOnly, Entity[string, string](text, text, RequestBodyStringV3)),
		boundRoute("request-body-string-v4", "/request-body-string-v4", postOnly, requestBodyRules, RequestBodyStringV4),

		boundRoute("headers", "/headers", anyMethod, headersRules, Headers),

		route("request-param-v1", "/request-param-v1", anyMethod, RequestParamV1),
		boundRoute("request-param-v2", "/request-param-v2", anyMethod, requestParamV2Rules, RequestParam),
		boundRoute("request-param-v3", "/request-param-v3", anyMethod, requestParamV3Rules, RequestParam),
		boundRoute("request-param-required", "/request-param-required", anyMethod, requestParamRequiredRules, RequestParamRequired),
		boundRoute("request-param-default", "/request-param-default", anyMethod, requestParamDefaultRules, RequestParamDefault),
		boundRoute("request-param-map", "/request-param-map", anyMethod, requestParamMapRules, RequestParamMap),

		boundRoute("model-attribute-v1", "/model-attribute-v1", anyMethod, modelAttributeV1Rules, ModelAttributeV1),
		route("model-attribute-v2", "/model-attribute-v2", anyMethod, Text(ModelAttributeV2)),
		route("model-attribute-v3", "/model-attribute-v3", anyMethod, Attribute(ModelAttributeV3)),

		route("users-list", UsersPrefix, getOnly, Text(ListUsers)),
		route("users-create", UsersPrefix, postOnly, Text(AddUser)),
		route("users-find", UsersPrefix+"/{userId}", getOnly, Text(FindUser)),
		route("users-update", UsersPrefix+"/{userId}", patchOnly, Text(UpdateUser)),
		route("users-delete", UsersPrefix+"/{userId}", deleteOnly, Text(DeleteUser)),
	}
}
