package bundlr

import "errors"

var (
	ErrSignerNotSpecified       = errors.New("signer not specified")
	ErrUnsupportedSignatureType = errors.New("unsupported signature type")
	ErrBufferTooSmall           = errors.New("buffer too small")
	ErrTagsTooLong              = errors.New("tags exceed the size limit")

	ErrNotEnoughBytesForSignatureType    = errors.New("not enough bytes for the signature type")
	ErrNotEnoughBytesForSignature        = errors.New("not enough bytes for the signature")
	ErrNotEnoughBytesForOwner            = errors.New("not enough bytes for the owner")
	ErrNotEnoughBytesForTargetFlag       = errors.New("not enough bytes for the target flag")
	ErrNotEnoughBytesForTarget           = errors.New("not enough bytes for the target")
	ErrNotEnoughBytesForAnchorFlag       = errors.New("not enough bytes for the anchor flag")
	ErrNotEnoughBytesForAnchor           = errors.New("not enough bytes for the anchor")
	ErrNotEnoughBytesForNumberOfTags     = errors.New("not enough bytes for the number of tags")
	ErrNotEnoughBytesForNumberOfTagBytes = errors.New("not enough bytes for the number of tag bytes")
	ErrNotEnoughBytesForTags             = errors.New("not enough bytes for the tags")
	ErrNotEnoughBytesForItemCount        = errors.New("not enough bytes for the item count")
	ErrNotEnoughBytesForItemHeader       = errors.New("not enough bytes for the item header")
	ErrNotEnoughBytesForItemBody         = errors.New("not enough bytes for the item body")
	ErrItemIdMismatch                    = errors.New("item id differs from the bundle header")

	ErrVerifyIdSignatureMismatch = errors.New("id doesn't match the signature")
	ErrVerifyBadAnchorLength     = errors.New("anchor must be 32 bytes")
	ErrVerifyTooManyTags         = errors.New("too many tags")
	ErrVerifyEmptyTagName        = errors.New("empty tag name")
	ErrVerifyTooLongTagName      = errors.New("tag name too long")
	ErrVerifyEmptyTagValue       = errors.New("empty tag value")
	ErrVerifyTooLongTagValue     = errors.New("tag value too long")
)
