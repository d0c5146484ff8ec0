package visualization

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/dpp40/dpp-go-components/internal/common"
)

// DefaultQRSize is the edge length in pixels used when no size is given.
const DefaultQRSize = 200

// qrAccessPath is the public detail page the code points at. The token
// is the transport form of the shell identifier, so scanning the code
// resolves the passport without knowing the canonical id.
const qrAccessPath = "/dpp-detail.html?id=%s"

// RenderQR encodes the access path for a shell token as a PNG QR code.
// Size must be positive; zero selects the default.
func RenderQR(token string, size int) ([]byte, error) {
	if size == 0 {
		size = DefaultQRSize
	}
	if size < 0 {
		return nil, common.NewErrBadRequest(fmt.Sprintf("qr code size must be positive, got %d", size))
	}
	content := fmt.Sprintf(qrAccessPath, token)
	png, err := qrcode.Encode(content, qrcode.Low, size)
	if err != nil {
		return nil, common.NewErrRenderFailure("qr encoding: " + err.Error())
	}
	return png, nil
}
