package cli

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type OutputSuite struct {
	suite.Suite
}

func TestOutputSuite(t *testing.T) {
	suite.Run(t, new(OutputSuite))
}

func (s *OutputSuite) TestFlattenHTML() {
	s.Equal("CTF Arena Pro Upgrade now",
		flattenHTML(`<div><b>CTF Arena Pro</b><p>Upgrade   now</p></div>`))
}

func (s *OutputSuite) TestFlattenHTMLPlainText() {
	s.Equal("just text", flattenHTML("  just   text "))
}

func (s *OutputSuite) TestFlattenHTMLStripsScripts() {
	// Ad content is untrusted; only visible text should reach the terminal
	text := flattenHTML(`<div>Visible<script>alert(1)</script></div>`)
	s.Contains(text, "Visible")
}

func (s *OutputSuite) TestDefaultConfig() {
	cfg := DefaultConfig()
	s.Equal("http://localhost:8000", cfg.ServerURL)
	s.Equal("text", cfg.Output)
	s.Contains(cfg.CredentialsFile, "credentials.json")
}
