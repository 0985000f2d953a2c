package accounts

import "github.com/bilanco-dev/bilanco/internal/model"

// DefaultCatalog returns the balance-sheet part of the Uniform Chart of
// Accounts (Tek Düzen Hesap Planı). Group rows carry no ledger code.
func DefaultCatalog() []model.ChartCatalogEntry {
	a := func(c, name, ledger string) model.ChartCatalogEntry {
		return model.ChartCatalogEntry{Code: c, Name: name, Side: model.SideAsset, LedgerCode: ledger}
	}
	p := func(c, name, ledger string) model.ChartCatalogEntry {
		return model.ChartCatalogEntry{Code: c, Name: name, Side: model.SideLiabilityEquity, LedgerCode: ledger}
	}

	return []model.ChartCatalogEntry{
		a("A.1", "DÖNEN VARLIKLAR", ""),
		a("A.1.1", "HAZIR DEĞERLER", ""),
		a("A.1.1.1", "KASA", "100"),
		a("A.1.1.2", "ALINAN ÇEKLER", "101"),
		a("A.1.1.3", "BANKALAR", "102"),
		a("A.1.1.4", "VERİLEN ÇEKLER VE ÖDEME EMİRLERİ (-)", "103"),
		a("A.1.1.5", "DİĞER HAZIR DEĞERLER", "108"),
		a("A.1.2", "MENKUL KIYMETLER", ""),
		a("A.1.2.1", "HİSSE SENETLERİ", "110"),
		a("A.1.2.2", "ÖZEL KESİM TAHVİL SENET VE BONOLARI", "111"),
		a("A.1.2.3", "KAMU KESİMİ TAHVİL SENET VE BONOLARI", "112"),
		a("A.1.3", "TİCARİ ALACAKLAR", ""),
		a("A.1.3.1", "ALICILAR", "120"),
		a("A.1.3.2", "ALACAK SENETLERİ", "121"),
		a("A.1.3.3", "ALACAK SENETLERİ REESKONTU (-)", "122"),
		a("A.1.3.4", "VERİLEN DEPOZİTO VE TEMİNATLAR", "126"),
		a("A.1.3.5", "ŞÜPHELİ TİCARİ ALACAKLAR", "128"),
		a("A.1.3.6", "ŞÜPHELİ TİCARİ ALACAKLAR KARŞILIĞI (-)", "129"),
		a("A.1.4", "DİĞER ALACAKLAR", ""),
		a("A.1.4.1", "ORTAKLARDAN ALACAKLAR", "131"),
		a("A.1.4.2", "PERSONELDEN ALACAKLAR", "135"),
		a("A.1.4.3", "DİĞER ÇEŞİTLİ ALACAKLAR", "136"),
		a("A.1.5", "STOKLAR", ""),
		a("A.1.5.1", "İLK MADDE VE MALZEME", "150"),
		a("A.1.5.2", "YARI MAMULLER - ÜRETİM", "151"),
		a("A.1.5.3", "MAMULLER", "152"),
		a("A.1.5.4", "TİCARİ MALLAR", "153"),
		a("A.1.5.5", "VERİLEN SİPARİŞ AVANSLARI", "159"),
		a("A.1.8", "GELECEK AYLARA AİT GİDERLER VE GELİR TAHAKKUKLARI", ""),
		a("A.1.8.1", "GELECEK AYLARA AİT GİDERLER", "180"),
		a("A.1.8.2", "GELİR TAHAKKUKLARI", "181"),
		a("A.1.9", "DİĞER DÖNEN VARLIKLAR", ""),
		a("A.1.9.1", "DEVREDEN KDV", "190"),
		a("A.1.9.2", "İNDİRİLECEK KDV", "191"),
		a("A.1.9.3", "PEŞİN ÖDENEN VERGİLER VE FONLAR", "193"),
		a("A.2", "DURAN VARLIKLAR", ""),
		a("A.2.1", "TİCARİ ALACAKLAR", ""),
		a("A.2.1.1", "ALICILAR", "220"),
		a("A.2.1.2", "VERİLEN DEPOZİTO VE TEMİNATLAR", "226"),
		a("A.2.3", "MALİ DURAN VARLIKLAR", ""),
		a("A.2.3.1", "BAĞLI MENKUL KIYMETLER", "240"),
		a("A.2.3.2", "İŞTİRAKLER", "242"),
		a("A.2.3.3", "BAĞLI ORTAKLIKLAR", "245"),
		a("A.2.4", "MADDİ DURAN VARLIKLAR", ""),
		a("A.2.4.1", "ARAZİ VE ARSALAR", "250"),
		a("A.2.4.2", "YERALTI VE YERÜSTÜ DÜZENLERİ", "251"),
		a("A.2.4.3", "BİNALAR", "252"),
		a("A.2.4.4", "TESİS, MAKİNE VE CİHAZLAR", "253"),
		a("A.2.4.5", "TAŞITLAR", "254"),
		a("A.2.4.6", "DEMİRBAŞLAR", "255"),
		a("A.2.4.7", "BİRİKMİŞ AMORTİSMANLAR (-)", "257"),
		a("A.2.4.8", "YAPILMAKTA OLAN YATIRIMLAR", "258"),
		a("A.2.5", "MADDİ OLMAYAN DURAN VARLIKLAR", ""),
		a("A.2.5.1", "HAKLAR", "260"),
		a("A.2.5.2", "ŞEREFİYE", "261"),
		a("A.2.5.3", "BİRİKMİŞ AMORTİSMANLAR (-)", "268"),
		a("A.2.7", "GELECEK YILLARA AİT GİDERLER VE GELİR TAHAKKUKLARI", ""),
		a("A.2.7.1", "GELECEK YILLARA AİT GİDERLER", "280"),

		p("P.1", "KISA VADELİ YABANCI KAYNAKLAR", ""),
		p("P.1.1", "MALİ BORÇLAR", ""),
		p("P.1.1.1", "BANKA KREDİLERİ", "300"),
		p("P.1.1.2", "UZUN VADELİ KREDİLERİN ANAPARA TAKSİTLERİ VE FAİZLERİ", "303"),
		p("P.1.1.3", "DİĞER MALİ BORÇLAR", "309"),
		p("P.1.2", "TİCARİ BORÇLAR", ""),
		p("P.1.2.1", "SATICILAR", "320"),
		p("P.1.2.2", "BORÇ SENETLERİ", "321"),
		p("P.1.2.3", "ALINAN DEPOZİTO VE TEMİNATLAR", "326"),
		p("P.1.3", "DİĞER BORÇLAR", ""),
		p("P.1.3.1", "ORTAKLARA BORÇLAR", "331"),
		p("P.1.3.2", "PERSONELE BORÇLAR", "335"),
		p("P.1.3.3", "DİĞER ÇEŞİTLİ BORÇLAR", "336"),
		p("P.1.4", "ALINAN AVANSLAR", ""),
		p("P.1.4.1", "ALINAN SİPARİŞ AVANSLARI", "340"),
		p("P.1.6", "ÖDENECEK VERGİ VE DİĞER YÜKÜMLÜLÜKLER", ""),
		p("P.1.6.1", "ÖDENECEK VERGİ VE FONLAR", "360"),
		p("P.1.6.2", "ÖDENECEK SOSYAL GÜVENLİK KESİNTİLERİ", "361"),
		p("P.1.7", "BORÇ VE GİDER KARŞILIKLARI", ""),
		p("P.1.7.1", "DÖNEM KARI VERGİ VE DİĞER YASAL YÜKÜMLÜLÜK KARŞILIKLARI", "370"),
		p("P.1.7.2", "DÖNEM KARININ PEŞİN ÖDENEN VERGİ VE DİĞER YÜKÜMLÜLÜKLERİ (-)", "371"),
		p("P.1.8", "GELECEK AYLARA AİT GELİRLER VE GİDER TAHAKKUKLARI", ""),
		p("P.1.8.1", "GELECEK AYLARA AİT GELİRLER", "380"),
		p("P.1.8.2", "GİDER TAHAKKUKLARI", "381"),
		p("P.2", "UZUN VADELİ YABANCI KAYNAKLAR", ""),
		p("P.2.1", "MALİ BORÇLAR", ""),
		p("P.2.1.1", "BANKA KREDİLERİ", "400"),
		p("P.2.1.2", "DİĞER MALİ BORÇLAR", "409"),
		p("P.2.2", "TİCARİ BORÇLAR", ""),
		p("P.2.2.1", "SATICILAR", "420"),
		p("P.2.2.2", "BORÇ SENETLERİ", "421"),
		p("P.2.7", "BORÇ VE GİDER KARŞILIKLARI", ""),
		p("P.2.7.1", "KIDEM TAZMİNATI KARŞILIĞI", "472"),
		p("P.3", "ÖZKAYNAKLAR", ""),
		p("P.3.1", "ÖDENMİŞ SERMAYE", ""),
		p("P.3.1.1", "SERMAYE", "500"),
		p("P.3.1.2", "ÖDENMEMİŞ SERMAYE (-)", "501"),
		p("P.3.1.3", "SERMAYE DÜZELTMESİ OLUMLU FARKLARI", "502"),
		p("P.3.2", "SERMAYE YEDEKLERİ", ""),
		p("P.3.2.1", "HİSSE SENEDİ İHRAÇ PRİMLERİ", "520"),
		p("P.3.2.2", "DİĞER SERMAYE YEDEKLERİ", "529"),
		p("P.3.3", "KAR YEDEKLERİ", ""),
		p("P.3.3.1", "YASAL YEDEKLER", "540"),
		p("P.3.3.2", "OLAĞANÜSTÜ YEDEKLER", "542"),
		p("P.3.4", "GEÇMİŞ YILLAR KARLARI", ""),
		p("P.3.4.1", "GEÇMİŞ YILLAR KARLARI", "570"),
		p("P.3.5", "GEÇMİŞ YILLAR ZARARLARI (-)", ""),
		p("P.3.5.1", "GEÇMİŞ YILLAR ZARARLARI (-)", "580"),
		p("P.3.6", "DÖNEM NET KARI (ZARARI)", ""),
		p("P.3.6.1", "DÖNEM NET KARI", "590"),
		p("P.3.6.2", "DÖNEM NET ZARARI (-)", "591"),
	}
}
