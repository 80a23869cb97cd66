package leveldb

import (
	"fmt"
	"strconv"
	"strings"
)

var (
	blockPrefix        = []byte("block/")
	hashPrefix         = []byte("hash/")
	donorPrefix        = []byte("donor/")
	recipientPrefix    = []byte("recipient/")
	campaignPrefix     = []byte("campaign/")
	contributionPrefix = []byte("contribution/")
)

// Numbers are zero padded so the byte order of keys follows the numeric order.
func padded(number uint64) string {
	return fmt.Sprintf("%020d", number)
}

func blockKey(number uint64) []byte {
	return append(append([]byte{}, blockPrefix...), padded(number)...)
}

func hashKey(hash string, number uint64) []byte {
	return []byte(string(hashPrefix) + hash + "/" + padded(number))
}

func hashKeyPrefix(hash string) []byte {
	return []byte(string(hashPrefix) + hash + "/")
}

func numberFromHashKey(key []byte) (uint64, error) {
	s := string(key)
	idx := strings.LastIndexByte(s, '/')
	if idx < 0 {
		return 0, fmt.Errorf("malformed hash key %q", s)
	}
	return strconv.ParseUint(s[idx+1:], 10, 64)
}

func donorKey(id string) []byte {
	return []byte(string(donorPrefix) + id)
}

func recipientKey(id string) []byte {
	return []byte(string(recipientPrefix) + id)
}

func campaignKey(id string) []byte {
	return []byte(string(campaignPrefix) + id)
}

func contributionKey(campaignID string, blockNumber uint64) []byte {
	return []byte(string(contributionPrefix) + campaignID + "/" + padded(blockNumber))
}

func contributionKeyPrefix(campaignID string) []byte {
	return []byte(string(contributionPrefix) + campaignID + "/")
}
