package poe2

import (
	"fmt"
	"net/url"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"

	"github.com/exilefund/fund"
)

/*
	poe2scout SnapshotPairs response shape:

	[
	    {
	        "CurrencyOne": {"apiId": "divine", ...},
	        "CurrencyTwo": {"apiId": "exalted", ...},
	        "CurrencyOneData": {"RelativePrice": 1.0, ...},
	        "CurrencyTwoData": {"RelativePrice": 0.0125, ...}
	    },
	    ...
	]
*/
const scoutURLFmt = "https://poe2scout.com/api/currencyExchange/SnapshotPairs?league=%s"

// SnapshotPairs fetches the latest currency exchange snapshot from
// poe2scout for one league. Responses are cached on disk for the day, so
// repeated runs within a session hit the network once.
func SnapshotPairs(league string) ([]fund.RatePair, error) {
	addr := fmt.Sprintf(scoutURLFmt, url.QueryEscape(league))
	var jobj any
	if err := jwget(daily(), addr, &jobj); err != nil {
		return nil, fmt.Errorf("error in wget %q: %w", "SnapshotPairs", err)
	}
	return parsePairs(jobj)
}

func parsePairs(jobj any) ([]fund.RatePair, error) {
	jpairs, ok := jobj.([]any)
	if !ok {
		return nil, fmt.Errorf("snapshot is not a list: %T", jobj)
	}
	var pairs []fund.RatePair
	for i, jpair := range jpairs {
		one, err := pathString(jpair, "$.CurrencyOne.apiId")
		if err != nil {
			return nil, fmt.Errorf("pair %d: %w", i, err)
		}
		two, err := pathString(jpair, "$.CurrencyTwo.apiId")
		if err != nil {
			return nil, fmt.Errorf("pair %d: %w", i, err)
		}
		onePrice, err := pathFloat(jpair, "$.CurrencyOneData.RelativePrice")
		if err != nil {
			return nil, fmt.Errorf("pair %d (%s/%s): %w", i, one, two, err)
		}
		twoPrice, err := pathFloat(jpair, "$.CurrencyTwoData.RelativePrice")
		if err != nil {
			return nil, fmt.Errorf("pair %d (%s/%s): %w", i, one, two, err)
		}
		pairs = append(pairs, fund.RatePair{
			One:      one,
			Two:      two,
			OnePrice: decimal.NewFromFloat(onePrice),
			TwoPrice: decimal.NewFromFloat(twoPrice),
		})
	}
	return pairs, nil
}

func pathString(jobj any, path string) (string, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return "", fmt.Errorf("error parsing %q: %w", path, err)
	}
	s, ok := jval.(string)
	if !ok {
		return "", fmt.Errorf("error parsing %q: not a string: %v", path, jval)
	}
	return s, nil
}

func pathFloat(jobj any, path string) (float64, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return 0, fmt.Errorf("error parsing %q: %w", path, err)
	}
	// because jsonpath is never clear about whether it returns a list of 1 answer, or a single answer:
	// by this call I keep the first one if any
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	val, ok := jval.(float64)
	if !ok {
		return 0, fmt.Errorf("error parsing %q: not a float: %v", path, jval)
	}
	return val, nil
}
