package controllers_test

import (
	"net/http"

	"github.com/envelope-budget/backend/test"
)

func (suite *TestSuiteStandard) TestGetHealthz() {
	r := suite.request(http.MethodGet, "/healthz", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
}

func (suite *TestSuiteStandard) TestGetHealthzFails() {
	suite.CloseDB()

	r := suite.request(http.MethodGet, "/healthz", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusInternalServerError)
}

func (suite *TestSuiteStandard) TestOptionsAuth() {
	for _, path := range []string{"/auth/register", "/auth/login"} {
		suite.Run(path, func() {
			r := suite.request(http.MethodOptions, path, "")
			test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
			suite.Assert().Equal("OPTIONS, POST", r.Header().Get("allow"))
		})
	}

	r := suite.request(http.MethodOptions, "/healthz", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
}
