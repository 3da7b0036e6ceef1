package contact_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yudhaa/portfolio/internal/contact"
)

func TestMailtoLink(t *testing.T) {
	t.Parallel()

	req := contact.Request{
		Name:    "Siti & Co",
		Email:   "siti+web@example.com",
		Subject: "Harga 100% = ?",
		Message: "Halo,\nApa kabar?",
	}

	link := contact.MailtoLink("owner@example.com", "Kontak Portofolio: ", req)

	assert.Equal(t,
		"mailto:owner@example.com?subject=Kontak%20Portofolio%3A%20Harga%20100%25%20%3D%20%3F"+
			"&body=Dari%3A%20Siti%20%26%20Co%20%28siti%2Bweb%40example.com%29%0A%0APesan%3A%0AHalo%2C%0AApa%20kabar%3F",
		link)
	assert.NotContains(t, link, "+")

	parsed, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "Kontak Portofolio: Harga 100% = ?", parsed.Query().Get("subject"))
	assert.Equal(t, "Dari: Siti & Co (siti+web@example.com)\n\nPesan:\nHalo,\nApa kabar?", parsed.Query().Get("body"))
}
